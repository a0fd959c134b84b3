package mark_no_show_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments"
	"github.com/m04kA/SMC-PaymentService/internal/usecase/mark_no_show"
	"github.com/m04kA/SMC-PaymentService/pkg/ptr"
)

// ---- mocks ----

type mockPaymentRepo struct {
	payment *domain.Payment
	getErr  error
}

func (m *mockPaymentRepo) GetByBookingID(_ context.Context, _ int64) (*domain.Payment, error) {
	return m.payment, m.getErr
}

type mockBookingRepo struct {
	booking     *domain.Booking
	bookingErr  error
	appointment *domain.Appointment
	apptErr     error

	cancelErr     error
	cancelledWith *domain.AppointmentStatus
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return m.booking, m.bookingErr
}

func (m *mockBookingRepo) GetAppointmentByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return m.appointment, m.apptErr
}

func (m *mockBookingRepo) CancelAppointment(_ context.Context, _ int64, status domain.AppointmentStatus, _ string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	m.cancelledWith = &status
	return nil
}

type mockCharger struct {
	chargedAmounts []float64
	chargeErr      error
	releaseCalled  bool
}

func (m *mockCharger) ApplyPartialCharge(_ context.Context, _ *domain.Payment, amount float64) (float64, error) {
	if m.chargeErr != nil {
		return 0, m.chargeErr
	}
	m.chargedAmounts = append(m.chargedAmounts, amount)
	return amount, nil
}

func (m *mockCharger) ReleaseHold(_ context.Context, _ *domain.Payment) error {
	m.releaseCalled = true
	return nil
}

type mockNotifier struct {
	kinds []notifier.NotificationKind
}

func (m *mockNotifier) NotifyAsync(_ int64, kind notifier.NotificationKind) {
	m.kinds = append(m.kinds, kind)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- fixtures ----

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func startedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:        5,
		BookingID: 10,
		StartTime: testNow.Add(-30 * time.Minute),
		EndTime:   testNow.Add(30 * time.Minute),
		Status:    domain.AppointmentStatusScheduled,
	}
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:             10,
		ProfessionalID: 3,
		TotalAmount:    80,
		PaymentMethod:  domain.PaymentMethodOnline,
	}
}

func heldPayment() *domain.Payment {
	return &domain.Payment{
		ID:                7,
		BookingID:         10,
		Amount:            80,
		Status:            domain.PaymentStatusPreAuthorized,
		ProcessorIntentID: ptr.Ptr("pi_1"),
	}
}

func newUseCase(pr *mockPaymentRepo, br *mockBookingRepo, ch *mockCharger, nt *mockNotifier) *mark_no_show.UseCase {
	return mark_no_show.NewUseCase(pr, br, ch, nt, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
}

// ---- tests ----

func TestExecute_ChargesConfiguredPercent(t *testing.T) {
	paymentStore := &mockPaymentRepo{payment: heldPayment()}
	bookings := &mockBookingRepo{booking: testBooking(), appointment: startedAppointment()}
	charger := &mockCharger{}
	notif := &mockNotifier{}

	uc := newUseCase(paymentStore, bookings, charger, notif)
	resp, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 5,
		ChargePercent: 50,
	})

	require.NoError(t, err)
	assert.InDelta(t, 40.0, resp.ChargedAmount, 1e-9)
	assert.Equal(t, 50.0, resp.ChargePercent)

	require.NotNil(t, bookings.cancelledWith)
	assert.Equal(t, domain.AppointmentStatusNoShow, *bookings.cancelledWith)
	assert.Equal(t, []notifier.NotificationKind{notifier.KindNoShowCharge}, notif.kinds)
}

func TestExecute_ClampsPercentAtBoundary(t *testing.T) {
	tests := []struct {
		name        string
		percent     float64
		wantPercent float64
		wantAmount  float64
	}{
		{name: "above 100 clamps to 100", percent: 150, wantPercent: 100, wantAmount: 80},
		{name: "below 0 clamps to 0", percent: -20, wantPercent: 0, wantAmount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentStore := &mockPaymentRepo{payment: heldPayment()}
			bookings := &mockBookingRepo{booking: testBooking(), appointment: startedAppointment()}
			charger := &mockCharger{}

			uc := newUseCase(paymentStore, bookings, charger, &mockNotifier{})
			resp, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
				AppointmentID: 5,
				ChargePercent: tt.percent,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPercent, resp.ChargePercent)
			assert.InDelta(t, tt.wantAmount, resp.ChargedAmount, 1e-9)
		})
	}
}

func TestExecute_ZeroPercentReleasesHold(t *testing.T) {
	paymentStore := &mockPaymentRepo{payment: heldPayment()}
	bookings := &mockBookingRepo{booking: testBooking(), appointment: startedAppointment()}
	charger := &mockCharger{}
	notif := &mockNotifier{}

	uc := newUseCase(paymentStore, bookings, charger, notif)
	resp, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 5,
		ChargePercent: 0,
	})

	require.NoError(t, err)
	assert.Zero(t, resp.ChargedAmount)
	assert.True(t, charger.releaseCalled)
	assert.Empty(t, notif.kinds)
}

func TestExecute_NoCardOnFileWaivesChargeAndNeutralizesPayment(t *testing.T) {
	paymentStore := &mockPaymentRepo{payment: &domain.Payment{
		ID:        7,
		BookingID: 10,
		Status:    domain.PaymentStatusPending,
	}}
	bookings := &mockBookingRepo{booking: testBooking(), appointment: startedAppointment()}
	charger := &mockCharger{chargeErr: payments.ErrNotCharged}

	uc := newUseCase(paymentStore, bookings, charger, &mockNotifier{})
	resp, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 5,
		ChargePercent: 50,
	})

	require.NoError(t, err)
	assert.Zero(t, resp.ChargedAmount)
	require.NotNil(t, bookings.cancelledWith)
	assert.Equal(t, domain.AppointmentStatusNoShow, *bookings.cancelledWith)

	// Pending-запись нейтрализована и больше не попадёт в батч-выборки
	assert.True(t, charger.releaseCalled)
}

func TestExecute_AlreadyCancelledIsConflict(t *testing.T) {
	appt := startedAppointment()
	appt.Status = domain.AppointmentStatusNoShow

	bookings := &mockBookingRepo{booking: testBooking(), appointment: appt}

	uc := newUseCase(&mockPaymentRepo{}, bookings, &mockCharger{}, &mockNotifier{})
	_, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 5,
		ChargePercent: 50,
	})

	assert.ErrorIs(t, err, mark_no_show.ErrAlreadyProcessed)
}

func TestExecute_NotStartedYet(t *testing.T) {
	appt := startedAppointment()
	appt.StartTime = testNow.Add(2 * time.Hour)
	appt.EndTime = testNow.Add(3 * time.Hour)

	bookings := &mockBookingRepo{booking: testBooking(), appointment: appt}

	uc := newUseCase(&mockPaymentRepo{}, bookings, &mockCharger{}, &mockNotifier{})
	_, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 5,
		ChargePercent: 50,
	})

	assert.ErrorIs(t, err, mark_no_show.ErrNotStarted)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	bookings := &mockBookingRepo{apptErr: bookingRepo.ErrAppointmentNotFound}

	uc := newUseCase(&mockPaymentRepo{}, bookings, &mockCharger{}, &mockNotifier{})
	_, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 99,
		ChargePercent: 50,
	})

	assert.ErrorIs(t, err, mark_no_show.ErrAppointmentNotFound)
}

func TestExecute_LostCancelRaceIsConflict(t *testing.T) {
	paymentStore := &mockPaymentRepo{payment: heldPayment()}
	bookings := &mockBookingRepo{
		booking:     testBooking(),
		appointment: startedAppointment(),
		cancelErr:   bookingRepo.ErrAlreadyCancelled,
	}

	uc := newUseCase(paymentStore, bookings, &mockCharger{}, &mockNotifier{})
	_, err := uc.Execute(context.Background(), &mark_no_show.NoShowRequest{
		AppointmentID: 5,
		ChargePercent: 50,
	})

	assert.ErrorIs(t, err, mark_no_show.ErrAlreadyProcessed)
}
