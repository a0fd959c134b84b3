package run_preauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
	"github.com/m04kA/SMC-PaymentService/internal/usecase/run_preauth"
	"github.com/m04kA/SMC-PaymentService/pkg/ptr"
)

// ---- mocks ----

type mockPaymentRepo struct {
	candidates []*domain.Payment
	byID       map[int64]*domain.Payment

	markErr     error
	markedID    *int64
	markedIntnt *string
	markedExp   *time.Time
}

func (m *mockPaymentRepo) FindNeedingPreAuth(_ context.Context, _ uint64) ([]*domain.Payment, error) {
	return m.candidates, nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	return m.byID[id], nil
}

func (m *mockPaymentRepo) MarkPreAuthorized(_ context.Context, id int64, intentID string, expiresAt *time.Time) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.markedID = &id
	m.markedIntnt = &intentID
	m.markedExp = expiresAt
	return nil
}

type mockBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (m *mockBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	return m.bookings[id], nil
}

type mockGateway struct {
	held      *processor.HeldIntent
	createErr error
	requests  []processor.CreateHeldIntentRequest
}

func (m *mockGateway) CreateHeldIntent(_ context.Context, req processor.CreateHeldIntentRequest) (*processor.HeldIntent, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.requests = append(m.requests, req)
	return m.held, nil
}

type mockNotifier struct {
	kinds []notifier.NotificationKind
}

func (m *mockNotifier) NotifyAsync(_ int64, kind notifier.NotificationKind) {
	m.kinds = append(m.kinds, kind)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- helpers ----

func pendingPayment(id, bookingID int64) *domain.Payment {
	return &domain.Payment{
		ID:                       id,
		BookingID:                bookingID,
		Amount:                   100,
		Status:                   domain.PaymentStatusPending,
		CaptureMethod:            domain.CaptureMethodManual,
		ProcessorPaymentMethodID: ptr.Ptr("pm_1"),
	}
}

func onlineBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:                             id,
		PaymentMethod:                  domain.PaymentMethodOnline,
		TotalAmount:                    100,
		ProfessionalConnectedAccountID: ptr.Ptr("acct_1"),
	}
}

// ---- tests ----

func TestExecute_CreatesHoldAndMarksPreAuthorized(t *testing.T) {
	p := pendingPayment(1, 10)
	expires := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)

	repo := &mockPaymentRepo{
		candidates: []*domain.Payment{p},
		byID:       map[int64]*domain.Payment{1: p},
	}
	bookings := &mockBookingRepo{bookings: map[int64]*domain.Booking{10: onlineBooking(10)}}
	gw := &mockGateway{held: &processor.HeldIntent{IntentID: "pi_1", AuthorizationExpiresAt: &expires}}
	notif := &mockNotifier{}

	uc := run_preauth.NewUseCase(repo, bookings, gw, notif, 100, nopLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Errors)

	require.NotNil(t, repo.markedIntnt)
	assert.Equal(t, "pi_1", *repo.markedIntnt)
	require.NotNil(t, repo.markedExp)
	assert.True(t, repo.markedExp.Equal(expires))

	require.Len(t, gw.requests, 1)
	assert.Equal(t, int64(10000), gw.requests[0].AmountCents)
	assert.Equal(t, "pm_1", gw.requests[0].PaymentMethodID)
	assert.Equal(t, domain.RouteKindConnectedAccount, gw.requests[0].Route.Kind)

	assert.Equal(t, []notifier.NotificationKind{notifier.KindPreAuthorized}, notif.kinds)
}

func TestExecute_SkipsPaymentRefundedAfterFetch(t *testing.T) {
	stale := pendingPayment(1, 10)
	fresh := pendingPayment(1, 10)
	fresh.Status = domain.PaymentStatusRefunded

	repo := &mockPaymentRepo{
		candidates: []*domain.Payment{stale},
		byID:       map[int64]*domain.Payment{1: fresh},
	}
	gw := &mockGateway{held: &processor.HeldIntent{IntentID: "pi_1"}}
	notif := &mockNotifier{}

	uc := run_preauth.NewUseCase(repo, &mockBookingRepo{}, gw, notif, 100, nopLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Errors)

	// Холд не создавался, платеж не трогали
	assert.Empty(t, gw.requests)
	assert.Nil(t, repo.markedID)
	assert.Empty(t, notif.kinds)
}

func TestExecute_MissingTokenIsIsolatedAnomaly(t *testing.T) {
	broken := pendingPayment(1, 10)
	broken.ProcessorPaymentMethodID = nil
	healthy := pendingPayment(2, 20)

	repo := &mockPaymentRepo{
		candidates: []*domain.Payment{broken, healthy},
		byID:       map[int64]*domain.Payment{2: healthy},
	}
	bookings := &mockBookingRepo{bookings: map[int64]*domain.Booking{20: onlineBooking(20)}}
	gw := &mockGateway{held: &processor.HeldIntent{IntentID: "pi_2"}}

	uc := run_preauth.NewUseCase(repo, bookings, gw, &mockNotifier{}, 100, nopLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.ErrorDetails, 1)
	assert.Contains(t, result.ErrorDetails[0], "10:")
}

func TestExecute_StatusConflictCountsAsSkip(t *testing.T) {
	p := pendingPayment(1, 10)

	repo := &mockPaymentRepo{
		candidates: []*domain.Payment{p},
		byID:       map[int64]*domain.Payment{1: p},
		markErr:    paymentRepo.ErrStatusConflict,
	}
	bookings := &mockBookingRepo{bookings: map[int64]*domain.Booking{10: onlineBooking(10)}}
	gw := &mockGateway{held: &processor.HeldIntent{IntentID: "pi_1"}}
	notif := &mockNotifier{}

	uc := run_preauth.NewUseCase(repo, bookings, gw, notif, 100, nopLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Errors)
	assert.Empty(t, notif.kinds)
}

func TestExecute_MissingConnectedAccountIsIsolated(t *testing.T) {
	p := pendingPayment(1, 10)
	booking := onlineBooking(10)
	booking.ProfessionalConnectedAccountID = nil

	repo := &mockPaymentRepo{
		candidates: []*domain.Payment{p},
		byID:       map[int64]*domain.Payment{1: p},
	}
	bookings := &mockBookingRepo{bookings: map[int64]*domain.Booking{10: booking}}
	gw := &mockGateway{held: &processor.HeldIntent{IntentID: "pi_1"}}

	uc := run_preauth.NewUseCase(repo, bookings, gw, &mockNotifier{}, 100, nopLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	assert.Empty(t, gw.requests)
}
