package run_capture

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/pkg/batchrun"
	"github.com/m04kA/SMC-PaymentService/pkg/money"
)

// UseCase батч-джоб списания: захватывает холды платежей,
// у которых наступило capture_scheduled_for
type UseCase struct {
	paymentRepo PaymentRepository
	gateway     ProcessorGateway
	notifier    Notifier
	limit       uint64
	logger      Logger
}

// NewUseCase создает новый экземпляр джоба списания
func NewUseCase(
	paymentRepo PaymentRepository,
	gateway ProcessorGateway,
	notifier Notifier,
	limit uint64,
	logger Logger,
) *UseCase {
	if limit == 0 || limit > domain.MaxBatchLimit {
		limit = domain.DefaultBatchLimit
	}
	return &UseCase{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		notifier:    notifier,
		limit:       limit,
		logger:      logger,
	}
}

// Execute выполняет один запуск джоба
func (uc *UseCase) Execute(ctx context.Context) (batchrun.Result, error) {
	return batchrun.Run(ctx, uc, uc.logger)
}

// Name имя джоба для логов и метрик
func (uc *UseCase) Name() string {
	return "capture-job"
}

// Fetch возвращает ограниченный набор платежей, готовых к списанию
func (uc *UseCase) Fetch(ctx context.Context) ([]*domain.Payment, error) {
	return uc.paymentRepo.FindNeedingCapture(ctx, uc.limit)
}

// Key идентификатор элемента в списке ошибок - ID бронирования
func (uc *UseCase) Key(p *domain.Payment) string {
	return strconv.FormatInt(p.BookingID, 10)
}

// Process списывает холд одного платежа.
// Полная сумма - услуга/депозит плюс чаевые на момент списания
func (uc *UseCase) Process(ctx context.Context, p *domain.Payment) error {
	// Повторная проверка перед вызовом процессора: платеж мог быть
	// возвращён или списан синхронной операцией после выборки
	fresh, err := uc.paymentRepo.GetByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to reload payment: %v", ErrInternal, err)
	}
	if !fresh.CanBeCaptured() {
		uc.logger.Warn("capture-job: payment=%d booking=%d no longer pre-authorized (status=%s), skipping",
			fresh.ID, fresh.BookingID, fresh.Status)
		return ErrAlreadyProcessed
	}

	total := money.Round(fresh.TotalCaptureAmount())

	// Нулевая сумма - легитимный no-op capture: наличное бронирование
	// с депозитом могло обнулиться корректировками. Платеж всё равно
	// помечается captured, чтобы выйти из батч-выборок
	if total <= 0 {
		if err := uc.markCaptured(ctx, fresh.ID, 0); err != nil {
			return err
		}
		uc.logger.Info("capture-job: payment=%d booking=%d captured as zero-amount no-op",
			fresh.ID, fresh.BookingID)
		uc.notifier.NotifyAsync(fresh.BookingID, notifier.KindCaptured)
		return nil
	}

	if fresh.ProcessorIntentID == nil || *fresh.ProcessorIntentID == "" {
		uc.logger.Error("capture-job: data integrity anomaly, payment=%d booking=%d is pre-authorized without an intent",
			fresh.ID, fresh.BookingID)
		return ErrMissingIntent
	}

	result, err := uc.gateway.CaptureIntent(ctx, *fresh.ProcessorIntentID, money.ToCents(total))
	if err != nil {
		return err
	}

	captured := money.FromCents(result.CapturedAmountCents)
	if err := uc.markCaptured(ctx, fresh.ID, captured); err != nil {
		return err
	}

	uc.logger.Info("capture-job: payment=%d booking=%d captured %.2f (amount=%.2f, tip=%.2f)",
		fresh.ID, fresh.BookingID, captured, fresh.Amount, fresh.TipAmount)

	// Уведомление fire-and-forget: движение денег - авторитативный
	// результат, провал уведомления его не откатывает
	uc.notifier.NotifyAsync(fresh.BookingID, notifier.KindCaptured)

	return nil
}

func (uc *UseCase) markCaptured(ctx context.Context, id int64, amount float64) error {
	if err := uc.paymentRepo.MarkCaptured(ctx, id, amount); err != nil {
		if errors.Is(err, paymentRepo.ErrStatusConflict) {
			uc.logger.Warn("capture-job: lost status race for payment=%d", id)
			return ErrAlreadyProcessed
		}
		return fmt.Errorf("%w: failed to mark captured: %v", ErrInternal, err)
	}
	return nil
}
