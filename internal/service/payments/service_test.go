package payments_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments/models"
	"github.com/m04kA/SMC-PaymentService/pkg/ptr"
)

// ---- mock repository ----

type mockPaymentRepo struct {
	payment *domain.Payment
	getErr  error

	markCapturedErr     error
	markRefundedErr     error
	updateTipErr        error
	updateCapturedErr   error
	capturedAmount      *float64
	refundedCalled      bool
	updatedTip          *float64
	adjustedCapturedAmt *float64
}

func (m *mockPaymentRepo) GetByID(_ context.Context, _ int64) (*domain.Payment, error) {
	return m.payment, m.getErr
}

func (m *mockPaymentRepo) GetByBookingID(_ context.Context, _ int64) (*domain.Payment, error) {
	return m.payment, m.getErr
}

func (m *mockPaymentRepo) MarkCaptured(_ context.Context, _ int64, capturedAmount float64) error {
	if m.markCapturedErr != nil {
		return m.markCapturedErr
	}
	m.capturedAmount = &capturedAmount
	return nil
}

func (m *mockPaymentRepo) MarkRefunded(_ context.Context, _ int64) error {
	if m.markRefundedErr != nil {
		return m.markRefundedErr
	}
	m.refundedCalled = true
	return nil
}

func (m *mockPaymentRepo) UpdateCapturedAmount(_ context.Context, _ int64, capturedAmount float64) error {
	if m.updateCapturedErr != nil {
		return m.updateCapturedErr
	}
	m.adjustedCapturedAmt = &capturedAmount
	return nil
}

func (m *mockPaymentRepo) UpdateTip(_ context.Context, _ int64, tipAmount float64) error {
	if m.updateTipErr != nil {
		return m.updateTipErr
	}
	m.updatedTip = &tipAmount
	return nil
}

// ---- mock gateway ----

type mockGateway struct {
	captureResult *processor.CaptureResult
	captureErr    error
	capturedCents *int64

	cancelErr    error
	cancelCalled bool

	refundErr   error
	refundCents *int64
}

func (m *mockGateway) CaptureIntent(_ context.Context, _ string, amountCents int64) (*processor.CaptureResult, error) {
	if m.captureErr != nil {
		return nil, m.captureErr
	}
	m.capturedCents = &amountCents
	if m.captureResult != nil {
		return m.captureResult, nil
	}
	return &processor.CaptureResult{CapturedAmountCents: amountCents}, nil
}

func (m *mockGateway) CancelIntent(_ context.Context, _ string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelCalled = true
	return nil
}

func (m *mockGateway) RefundIntent(_ context.Context, _ string, amountCents int64) error {
	if m.refundErr != nil {
		return m.refundErr
	}
	m.refundCents = &amountCents
	return nil
}

func (m *mockGateway) GetIntent(_ context.Context, _ string) (*processor.Intent, error) {
	return nil, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- tests ----

func TestAddTip_RejectsNegativeAmount(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{ID: 1, Status: domain.PaymentStatusPending}}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	err := svc.AddTip(context.Background(), &models.AddTipRequest{BookingID: 1, TipAmount: -5})

	assert.ErrorIs(t, err, payments.ErrInvalidInput)
	assert.Nil(t, repo.updatedTip)
}

func TestAddTip_RoundsToCents(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{ID: 1, Status: domain.PaymentStatusPending}}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	err := svc.AddTip(context.Background(), &models.AddTipRequest{BookingID: 1, TipAmount: 10.005})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedTip)
	assert.InDelta(t, 10.0, *repo.updatedTip, 1e-9)
}

func TestAddTip_NotMutableAfterCapture(t *testing.T) {
	repo := &mockPaymentRepo{
		payment: &domain.Payment{ID: 1, Status: domain.PaymentStatusCaptured},
	}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	err := svc.AddTip(context.Background(), &models.AddTipRequest{BookingID: 1, TipAmount: 5})

	assert.ErrorIs(t, err, payments.ErrTipNotMutable)
	assert.Nil(t, repo.updatedTip)
}

func TestAddTip_ConcurrentCaptureMapsRepositoryConflict(t *testing.T) {
	repo := &mockPaymentRepo{
		payment:      &domain.Payment{ID: 1, Status: domain.PaymentStatusPending},
		updateTipErr: paymentRepo.ErrTipNotMutable,
	}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	err := svc.AddTip(context.Background(), &models.AddTipRequest{BookingID: 1, TipAmount: 5})

	assert.ErrorIs(t, err, payments.ErrTipNotMutable)
}

func TestApplyPartialCharge_CapturesReducedAmountFromHold(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusPreAuthorized,
		Amount:            100,
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	charged, err := svc.ApplyPartialCharge(context.Background(), p, 50)

	require.NoError(t, err)
	assert.InDelta(t, 50.0, charged, 1e-9)
	require.NotNil(t, gw.capturedCents)
	assert.Equal(t, int64(5000), *gw.capturedCents)
	require.NotNil(t, repo.capturedAmount)
	assert.InDelta(t, 50.0, *repo.capturedAmount, 1e-9)
}

func TestApplyPartialCharge_RefundsDifferenceWhenCaptured(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusCaptured,
		Amount:            100,
		CapturedAmount:    ptr.Ptr(100.0),
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	charged, err := svc.ApplyPartialCharge(context.Background(), p, 30)

	require.NoError(t, err)
	assert.InDelta(t, 30.0, charged, 1e-9)
	require.NotNil(t, gw.refundCents)
	assert.Equal(t, int64(7000), *gw.refundCents)

	// После возврата запись отражает фактически удержанную сумму
	require.NotNil(t, repo.adjustedCapturedAmt)
	assert.InDelta(t, 30.0, *repo.adjustedCapturedAmt, 1e-9)
}

func TestApplyPartialCharge_KeepsFullAmountWhenChargeExceedsCaptured(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusCaptured,
		Amount:            100,
		CapturedAmount:    ptr.Ptr(20.0),
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	charged, err := svc.ApplyPartialCharge(context.Background(), p, 50)

	require.NoError(t, err)
	assert.InDelta(t, 20.0, charged, 1e-9)
	assert.Nil(t, gw.refundCents)
}

func TestApplyPartialCharge_NothingToChargeWithoutIntent(t *testing.T) {
	svc := payments.NewService(&mockPaymentRepo{}, &mockGateway{}, nopLogger{})

	p := &domain.Payment{ID: 1, Status: domain.PaymentStatusPending}

	_, err := svc.ApplyPartialCharge(context.Background(), p, 50)

	assert.ErrorIs(t, err, payments.ErrNotCharged)
}

func TestReleaseHold_CancelsIntentAndMarksRefunded(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusPreAuthorized,
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	err := svc.ReleaseHold(context.Background(), p)

	require.NoError(t, err)
	assert.True(t, gw.cancelCalled)
	assert.True(t, repo.refundedCalled)
}

func TestReleaseHold_RefundsCapturedPaymentInFull(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusCaptured,
		Amount:            20,
		CapturedAmount:    ptr.Ptr(20.0),
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	err := svc.ReleaseHold(context.Background(), p)

	require.NoError(t, err)
	require.NotNil(t, gw.refundCents)
	assert.Equal(t, int64(2000), *gw.refundCents)
	assert.False(t, gw.cancelCalled)
	assert.True(t, repo.refundedCalled)
}

func TestReleaseHold_RefundFailureKeepsCapturedRecord(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{refundErr: errors.New("processor timeout")}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusCaptured,
		Amount:            20,
		CapturedAmount:    ptr.Ptr(20.0),
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	err := svc.ReleaseHold(context.Background(), p)

	assert.ErrorIs(t, err, payments.ErrInternal)
	assert.False(t, repo.refundedCalled)
}

func TestReleaseHold_PendingPaymentIsMarkedRefundedWithoutGateway(t *testing.T) {
	repo := &mockPaymentRepo{}
	gw := &mockGateway{}
	svc := payments.NewService(repo, gw, nopLogger{})

	p := &domain.Payment{ID: 1, Status: domain.PaymentStatusPending}

	err := svc.ReleaseHold(context.Background(), p)

	require.NoError(t, err)
	assert.False(t, gw.cancelCalled)
	assert.Nil(t, gw.refundCents)
	assert.True(t, repo.refundedCalled)
}

func TestReleaseHold_TerminalStateIsNotAnError(t *testing.T) {
	repo := &mockPaymentRepo{markRefundedErr: paymentRepo.ErrStatusConflict}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	p := &domain.Payment{ID: 1, Status: domain.PaymentStatusPending}

	err := svc.ReleaseHold(context.Background(), p)

	assert.NoError(t, err)
}

func TestGetByBookingID_NotFound(t *testing.T) {
	repo := &mockPaymentRepo{getErr: paymentRepo.ErrPaymentNotFound}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	_, err := svc.GetByBookingID(context.Background(), 42)

	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
}

func TestGetByBookingID_MapsDomainPayment(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID:        9,
		BookingID: 42,
		Amount:    80,
		TipAmount: 10,
		Status:    domain.PaymentStatusPreAuthorized,
	}}
	svc := payments.NewService(repo, &mockGateway{}, nopLogger{})

	resp, err := svc.GetByBookingID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, string(domain.PaymentStatusPreAuthorized), resp.Status)
	assert.InDelta(t, 10.0, resp.TipAmount, 1e-9)
}

func TestApplyPartialCharge_GatewayFailurePropagates(t *testing.T) {
	gw := &mockGateway{captureErr: errors.New("processor timeout")}
	svc := payments.NewService(&mockPaymentRepo{}, gw, nopLogger{})

	p := &domain.Payment{
		ID:                1,
		Status:            domain.PaymentStatusPreAuthorized,
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}

	_, err := svc.ApplyPartialCharge(context.Background(), p, 50)

	assert.ErrorIs(t, err, payments.ErrInternal)
}
