package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	policyRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/service/charges"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments"
)

// UseCase отмена бронирования: расчет и удержание платы за отмену
// по политике профессионала, освобождение холда при нулевой плате
type UseCase struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	policyRepo   PolicyRepository
	charger      ChargeApplier
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase отмены бронирования
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	charger ChargeApplier,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		policyRepo:   policyRepo,
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

// Execute отменяет бронирование. Плата за отмену считается от полного времени
// до начала визита на момент вызова; удержание идёт против холда (уменьшенный
// capture) либо против уже списанного платежа (частичный возврат)
func (uc *UseCase) Execute(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" || len(reason) > domain.MaxCancellationReasonLength {
		return nil, ErrReasonRequired
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to load booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Execute - load booking: %v", ErrInternal, err)
	}

	appointment, err := uc.bookingRepo.GetAppointmentByBookingID(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrAppointmentNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to load appointment for booking=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Execute - load appointment: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	if appointment.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if appointment.IsCompleted(now) {
		return nil, ErrAlreadyCompleted
	}

	policy, err := uc.policyRepo.GetByProfessionalID(ctx, booking.ProfessionalID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CancelBooking: failed to load policy for professional=%d: %v",
				booking.ProfessionalID, err)
			return nil, fmt.Errorf("%w: Execute - load policy: %v", ErrInternal, err)
		}
		// Политика не настроена - отмена бесплатна
		policy = nil
	}

	breakdown := charges.CancellationCharge(policy, booking.TotalAmount, appointment.StartTime, now)

	charged, err := uc.settleCharge(ctx, booking.ID, breakdown.Amount)
	if err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.CancelAppointment(ctx, appointment.ID, domain.AppointmentStatusCancelled, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyCancelled) {
			return nil, ErrAlreadyCancelled
		}
		uc.logger.Error("CancelBooking: failed to cancel appointment=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Execute - cancel appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: booking=%d cancelled, charged=%.2f (%.0f%%)",
		booking.ID, charged, breakdown.Percentage)

	if charged > 0 {
		uc.notifier.NotifyAsync(booking.ID, notifier.KindCancellationCharge)
	}

	return &CancelResponse{
		BookingID:     booking.ID,
		ChargedAmount: charged,
		ChargePercent: breakdown.Percentage,
		CancelledAt:   now,
	}, nil
}

// settleCharge удерживает amount с платежа бронирования либо освобождает холд
// при нулевой плате. Отсутствие платежа или карты на файле не блокирует
// отмену - удержание просто нулевое
func (uc *UseCase) settleCharge(ctx context.Context, bookingID int64, amount float64) (float64, error) {
	payment, err := uc.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("CancelBooking: no payment record for booking=%d, nothing to charge", bookingID)
			return 0, nil
		}
		uc.logger.Error("CancelBooking: failed to load payment for booking=%d: %v", bookingID, err)
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
			// Карты на файле нет - списывать нечем. Платеж всё равно
			// нейтрализуется: иначе pending-запись с токеном позже попадёт
			// в выборку пре-авторизации и отменённое бронирование будет
			// списано полностью
			uc.logger.Info("CancelBooking: booking=%d has no chargeable payment, charge waived", bookingID)
			if err := uc.charger.ReleaseHold(ctx, payment); err != nil {
				return 0, fmt.Errorf("%w: settleCharge - neutralize payment: %v", ErrInternal, err)
			}
			return 0, nil
		}
		return 0, fmt.Errorf("%w: settleCharge - apply charge: %v", ErrInternal, err)
	}

	return charged, nil
}
