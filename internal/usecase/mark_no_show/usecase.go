package mark_no_show

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/service/charges"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments"
)

// UseCase пометка визита как no-show с удержанием процента от стоимости
type UseCase struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	charger      ChargeApplier
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase пометки no-show
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	charger ChargeApplier,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		charger:      charger,
		notifier:     notifier,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute помечает визит как no-show и удерживает ChargePercent от полной
// стоимости. Процент приводится к диапазону 0-100 на границе, а не
// отбрасывается с ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *NoShowRequest) (*NoShowResponse, error) {
	appointment, err := uc.bookingRepo.GetAppointmentByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("MarkNoShow: failed to load appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Execute - load appointment: %v", ErrInternal, err)
	}

	if appointment.IsCancelled() {
		return nil, ErrAlreadyProcessed
	}

	now := uc.timeProvider.Now()
	if appointment.StartTime.After(now) {
		return nil, ErrNotStarted
	}

	booking, err := uc.bookingRepo.GetByID(ctx, appointment.BookingID)
	if err != nil {
		uc.logger.Error("MarkNoShow: failed to load booking=%d for appointment=%d: %v",
			appointment.BookingID, appointment.ID, err)
		return nil, fmt.Errorf("%w: Execute - load booking: %v", ErrInternal, err)
	}

	percent := domain.ClampChargePercent(req.ChargePercent)
	amount, err := charges.NoShowCharge(booking.TotalAmount, percent)
	if err != nil {
		return nil, fmt.Errorf("%w: Execute - compute charge: %v", ErrInternal, err)
	}

	charged, err := uc.settleCharge(ctx, booking.ID, amount)
	if err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.CancelAppointment(ctx, appointment.ID, domain.AppointmentStatusNoShow, noShowReason); err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyCancelled) {
			return nil, ErrAlreadyProcessed
		}
		uc.logger.Error("MarkNoShow: failed to mark appointment=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Execute - mark appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("MarkNoShow: appointment=%d (booking=%d) marked, charged=%.2f (%.0f%%)",
		appointment.ID, booking.ID, charged, percent)

	if charged > 0 {
		uc.notifier.NotifyAsync(booking.ID, notifier.KindNoShowCharge)
	}

	return &NoShowResponse{
		AppointmentID: appointment.ID,
		BookingID:     booking.ID,
		ChargedAmount: charged,
		ChargePercent: percent,
		MarkedAt:      now,
	}, nil
}

// settleCharge удерживает amount с платежа бронирования либо освобождает холд
// при нулевой плате. Отсутствие платежа или карты на файле не блокирует
// пометку - удержание просто нулевое
func (uc *UseCase) settleCharge(ctx context.Context, bookingID int64, amount float64) (float64, error) {
	payment, err := uc.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("MarkNoShow: no payment record for booking=%d, nothing to charge", bookingID)
			return 0, nil
		}
		uc.logger.Error("MarkNoShow: failed to load payment for booking=%d: %v", bookingID, err)
		return 0, fmt.Errorf("%w: settleCharge - load payment: %v", ErrInternal, err)
	}

	if amount <= 0 {
		if err := uc.charger.ReleaseHold(ctx, payment); err != nil {
			return 0, fmt.Errorf("%w: settleCharge - release hold: %v", ErrInternal, err)
		}
		return 0, nil
	}

	charged, err := uc.charger.ApplyPartialCharge(ctx, payment, amount)
	if err != nil {
		if errors.Is(err, payments.ErrNotCharged) {
			// Списывать нечем, но pending-запись нейтрализуется, чтобы
			// батч-джобы не пре-авторизовали и не списали её позже
			uc.logger.Info("MarkNoShow: booking=%d has no chargeable payment, charge waived", bookingID)
			if err := uc.charger.ReleaseHold(ctx, payment); err != nil {
				return 0, fmt.Errorf("%w: settleCharge - neutralize payment: %v", ErrInternal, err)
			}
			return 0, nil
		}
		return 0, fmt.Errorf("%w: settleCharge - apply charge: %v", ErrInternal, err)
	}

	return charged, nil
}
