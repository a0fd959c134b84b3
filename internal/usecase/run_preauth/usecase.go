package run_preauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
	"github.com/m04kA/SMC-PaymentService/internal/service/routing"
	"github.com/m04kA/SMC-PaymentService/pkg/batchrun"
	"github.com/m04kA/SMC-PaymentService/pkg/money"
)

// fallbackAuthorizationWindow примерный срок жизни холда, если процессор
// не вернул authorization_expires_at. Только для лога: в хранилище
// записывается ровно то, что сообщил процессор
const fallbackAuthorizationWindow = 7 * 24 * time.Hour

// UseCase батч-джоб пре-авторизации: создает холды для платежей,
// у которых наступило pre_auth_scheduled_for
type UseCase struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	gateway      ProcessorGateway
	notifier     Notifier
	limit        uint64
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр джоба пре-авторизации
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	gateway ProcessorGateway,
	notifier Notifier,
	limit uint64,
	logger Logger,
) *UseCase {
	if limit == 0 || limit > domain.MaxBatchLimit {
		limit = domain.DefaultBatchLimit
	}
	return &UseCase{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		notifier:     notifier,
		limit:        limit,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один запуск джоба
func (uc *UseCase) Execute(ctx context.Context) (batchrun.Result, error) {
	return batchrun.Run(ctx, uc, uc.logger)
}

// Name имя джоба для логов и метрик
func (uc *UseCase) Name() string {
	return "preauth-job"
}

// Fetch возвращает ограниченный набор платежей, готовых к пре-авторизации
func (uc *UseCase) Fetch(ctx context.Context) ([]*domain.Payment, error) {
	return uc.paymentRepo.FindNeedingPreAuth(ctx, uc.limit)
}

// Key идентификатор элемента в списке ошибок - ID бронирования
func (uc *UseCase) Key(p *domain.Payment) string {
	return strconv.FormatInt(p.BookingID, 10)
}

// Process создает холд для одного платежа.
// Любая ошибка изолируется батч-раннером и не прерывает остальные элементы
func (uc *UseCase) Process(ctx context.Context, p *domain.Payment) error {
	// Защитная проверка: выборка требует наличия токена, но запись могла
	// быть повреждена. Логируем аномалию и пропускаем, не роняя батч
	if !p.HasPaymentMethod() {
		uc.logger.Error("preauth-job: data integrity anomaly, payment=%d booking=%d has no payment method token",
			p.ID, p.BookingID)
		return ErrMissingPaymentMethod
	}

	// Повторная проверка непосредственно перед вызовом процессора: клиент
	// мог отменить бронирование между выборкой и обработкой
	fresh, err := uc.paymentRepo.GetByID(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to reload payment: %v", ErrInternal, err)
	}
	if !fresh.CanBePreAuthorized() {
		uc.logger.Warn("preauth-job: payment=%d booking=%d no longer pending (status=%s, refunded=%t), skipping",
			fresh.ID, fresh.BookingID, fresh.Status, fresh.IsRefunded())
		return ErrAlreadyProcessed
	}

	booking, err := uc.bookingRepo.GetByID(ctx, fresh.BookingID)
	if err != nil {
		return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}

	route, err := routing.Decide(fresh, booking)
	if err != nil {
		// Ошибка конфигурации: фатальна для элемента, не для батча
		return err
	}

	req := processor.CreateHeldIntentRequest{
		AmountCents:     money.ToCents(fresh.Amount),
		PaymentMethodID: *fresh.ProcessorPaymentMethodID,
		Route:           route,
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(fresh.BookingID, 10),
			"payment_id": strconv.FormatInt(fresh.ID, 10),
		},
	}
	if fresh.ProcessorCustomerID != nil {
		req.CustomerID = *fresh.ProcessorCustomerID
	}

	held, err := uc.gateway.CreateHeldIntent(ctx, req)
	if err != nil {
		return err
	}

	// Срок истечения холда берём только из ответа процессора.
	// Локальная оценка используется исключительно в логе
	if held.AuthorizationExpiresAt == nil {
		uc.logger.Warn("preauth-job: processor omitted authorization expiry for intent=%s, hold likely expires around %s",
			held.IntentID, uc.timeProvider.Now().Add(fallbackAuthorizationWindow).Format(time.RFC3339))
	}

	if err := uc.paymentRepo.MarkPreAuthorized(ctx, fresh.ID, held.IntentID, held.AuthorizationExpiresAt); err != nil {
		if errors.Is(err, paymentRepo.ErrStatusConflict) {
			// Гонка с параллельным запуском: победитель уже записал холд
			uc.logger.Warn("preauth-job: lost status race for payment=%d, intent=%s left uncommitted",
				fresh.ID, held.IntentID)
			return ErrAlreadyProcessed
		}
		return fmt.Errorf("%w: failed to mark pre-authorized: %v", ErrInternal, err)
	}

	uc.logger.Info("preauth-job: payment=%d booking=%d pre-authorized, intent=%s, route=%s",
		fresh.ID, fresh.BookingID, held.IntentID, route.Kind)

	uc.notifier.NotifyAsync(fresh.BookingID, notifier.KindPreAuthorized)

	return nil
}
