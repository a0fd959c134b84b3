package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments/models"
	"github.com/m04kA/SMC-PaymentService/pkg/money"
)

// Service сервис для работы с платежами: чтение для отображения, чаевые
// и применение частичных списаний/возвратов для синхронных операций
type Service struct {
	paymentRepo PaymentRepository
	gateway     ProcessorGateway
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(paymentRepo PaymentRepository, gateway ProcessorGateway, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// GetByBookingID получает платеж бронирования для отображения
func (s *Service) GetByBookingID(ctx context.Context, bookingID int64) (*models.PaymentResponse, error) {
	p, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetByBookingID: payment for booking=%d not found", bookingID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByBookingID: repository error for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBookingID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(p), nil
}

// AddTip изменяет чаевые платежа. Чаевые всегда инициируются клиентом,
// аддитивны к сумме услуги и изменяемы только до capture
func (s *Service) AddTip(ctx context.Context, req *models.AddTipRequest) error {
	if req.TipAmount < 0 {
		s.logger.Warn("AddTip: negative tip %.2f for booking=%d", req.TipAmount, req.BookingID)
		return fmt.Errorf("%w: tip amount must not be negative", ErrInvalidInput)
	}

	p, err := s.paymentRepo.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		s.logger.Error("AddTip: repository error for booking=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: AddTip - repository error: %v", ErrInternal, err)
	}

	if !p.TipIsMutable() {
		s.logger.Warn("AddTip: tip no longer mutable for payment=%d, status=%s", p.ID, p.Status)
		return ErrTipNotMutable
	}

	if err := s.paymentRepo.UpdateTip(ctx, p.ID, money.Round(req.TipAmount)); err != nil {
		if errors.Is(err, paymentRepo.ErrTipNotMutable) {
			s.logger.Warn("AddTip: tip no longer mutable for payment=%d, status=%s", p.ID, p.Status)
			return ErrTipNotMutable
		}
		s.logger.Error("AddTip: repository error for payment=%d: %v", p.ID, err)
		return fmt.Errorf("%w: AddTip - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddTip: tip for booking=%d set to %.2f", req.BookingID, req.TipAmount)
	return nil
}

// ApplyPartialCharge применяет частичное списание amount к платежу при отмене
// или no-show. Для платежа с активным холдом выполняется уменьшенный capture;
// для уже списанного - возврат разницы. Возвращает фактически удержанную сумму.
//
// Платеж без авторизации (наличные, нет карты на файле) списать нечем -
// возвращается ErrNotCharged, вызывающая сторона продолжает с нулевым списанием
func (s *Service) ApplyPartialCharge(ctx context.Context, p *domain.Payment, amount float64) (float64, error) {
	if p.ProcessorIntentID == nil || *p.ProcessorIntentID == "" {
		return 0, ErrNotCharged
	}

	switch p.Status {
	case domain.PaymentStatusPreAuthorized:
		// Уменьшенный capture: остаток холда процессор освобождает сам
		result, err := s.gateway.CaptureIntent(ctx, *p.ProcessorIntentID, money.ToCents(amount))
		if err != nil {
			s.logger.Error("ApplyPartialCharge: capture failed for payment=%d, intent=%s: %v",
				p.ID, *p.ProcessorIntentID, err)
			return 0, fmt.Errorf("%w: ApplyPartialCharge - capture failed: %v", ErrInternal, err)
		}

		captured := money.FromCents(result.CapturedAmountCents)
		if err := s.paymentRepo.MarkCaptured(ctx, p.ID, captured); err != nil {
			if errors.Is(err, paymentRepo.ErrStatusConflict) {
				// Гонку выиграл другой процесс; деньги уже списаны им
				s.logger.Warn("ApplyPartialCharge: lost status race for payment=%d", p.ID)
				return 0, fmt.Errorf("%w: ApplyPartialCharge - status conflict: %v", ErrInternal, err)
			}
			s.logger.Error("ApplyPartialCharge: failed to mark captured payment=%d: %v", p.ID, err)
			return 0, fmt.Errorf("%w: ApplyPartialCharge - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("ApplyPartialCharge: captured %.2f of held payment=%d", captured, p.ID)
		return captured, nil

	case domain.PaymentStatusCaptured:
		// Частичная корректировка возвратом: оставляем amount, возвращаем разницу
		capturedAmount := p.TotalCaptureAmount()
		if p.CapturedAmount != nil {
			capturedAmount = *p.CapturedAmount
		}

		refund := money.Round(capturedAmount - amount)
		if refund <= 0 {
			s.logger.Info("ApplyPartialCharge: captured %.2f does not exceed charge %.2f for payment=%d, no refund",
				capturedAmount, amount, p.ID)
			return capturedAmount, nil
		}

		if err := s.gateway.RefundIntent(ctx, *p.ProcessorIntentID, money.ToCents(refund)); err != nil {
			s.logger.Error("ApplyPartialCharge: refund failed for payment=%d, intent=%s: %v",
				p.ID, *p.ProcessorIntentID, err)
			return 0, fmt.Errorf("%w: ApplyPartialCharge - refund failed: %v", ErrInternal, err)
		}

		// Возврат уже проведён процессором и не откатывается; провал записи
		// не должен провоцировать повторный возврат ретраем вызывающей стороны
		if err := s.paymentRepo.UpdateCapturedAmount(ctx, p.ID, money.Round(amount)); err != nil {
			s.logger.Error("ApplyPartialCharge: failed to record adjusted amount for payment=%d: %v", p.ID, err)
		}

		s.logger.Info("ApplyPartialCharge: refunded %.2f of captured payment=%d, kept %.2f",
			refund, p.ID, amount)
		return amount, nil

	default:
		return 0, ErrNotCharged
	}
}

// ReleaseHold освобождает платеж при отмене без списания: активный холд
// отменяется в процессоре, уже списанный платеж возвращается полностью.
// Платеж помечается возвращённым и навсегда выбывает из батч-выборок
func (s *Service) ReleaseHold(ctx context.Context, p *domain.Payment) error {
	if p.ProcessorIntentID != nil && *p.ProcessorIntentID != "" {
		switch p.Status {
		case domain.PaymentStatusPreAuthorized:
			if err := s.gateway.CancelIntent(ctx, *p.ProcessorIntentID); err != nil {
				s.logger.Error("ReleaseHold: failed to cancel intent=%s for payment=%d: %v",
					*p.ProcessorIntentID, p.ID, err)
				return fmt.Errorf("%w: ReleaseHold - cancel intent failed: %v", ErrInternal, err)
			}

		case domain.PaymentStatusCaptured:
			// Запись нельзя помечать возвращённой, пока деньги у процессора
			capturedAmount := p.TotalCaptureAmount()
			if p.CapturedAmount != nil {
				capturedAmount = *p.CapturedAmount
			}
			if capturedAmount > 0 {
				if err := s.gateway.RefundIntent(ctx, *p.ProcessorIntentID, money.ToCents(capturedAmount)); err != nil {
					s.logger.Error("ReleaseHold: failed to refund intent=%s for payment=%d: %v",
						*p.ProcessorIntentID, p.ID, err)
					return fmt.Errorf("%w: ReleaseHold - refund intent failed: %v", ErrInternal, err)
				}
				s.logger.Info("ReleaseHold: refunded captured %.2f for payment=%d", capturedAmount, p.ID)
			}
		}
	}

	if err := s.paymentRepo.MarkRefunded(ctx, p.ID); err != nil {
		if errors.Is(err, paymentRepo.ErrStatusConflict) {
			s.logger.Warn("ReleaseHold: payment=%d already in terminal state", p.ID)
			return nil
		}
		s.logger.Error("ReleaseHold: failed to mark refunded payment=%d: %v", p.ID, err)
		return fmt.Errorf("%w: ReleaseHold - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReleaseHold: payment=%d released", p.ID)
	return nil
}
