package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PaymentService/pkg/psqlbuilder"
)

// paymentColumns колонки платежа в порядке сканирования
var paymentColumns = []string{
	"p.id",
	"p.booking_id",
	"p.amount",
	"p.tip_amount",
	"p.capture_method",
	"p.status",
	"p.processor_intent_id",
	"p.processor_payment_method_id",
	"p.processor_customer_id",
	"p.pre_auth_scheduled_for",
	"p.capture_scheduled_for",
	"p.authorization_expires_at",
	"p.captured_at",
	"p.captured_amount",
	"p.refunded_at",
	"p.professional_connected_account_id",
	"p.created_at",
	"p.updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindNeedingPreAuth возвращает платежи, готовые к пре-авторизации:
// status=pending, есть токен способа оплаты, наступило pre_auth_scheduled_for,
// нет возврата. Платежи наличных бронирований без депозита исключаются на
// уровне запроса - их intent создается сразу при списании, холд не нужен.
func (r *Repository) FindNeedingPreAuth(ctx context.Context, limit uint64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments p").
		Join("bookings b ON b.id = p.booking_id").
		Where(squirrel.Eq{"p.status": domain.PaymentStatusPending}).
		Where(squirrel.Eq{"p.capture_method": domain.CaptureMethodManual}).
		Where("p.processor_payment_method_id IS NOT NULL").
		Where("p.pre_auth_scheduled_for IS NOT NULL AND p.pre_auth_scheduled_for <= NOW()").
		Where("p.refunded_at IS NULL").
		Where("NOT (b.payment_method = ? AND b.deposit_amount = 0)", domain.PaymentMethodCash).
		OrderBy("p.pre_auth_scheduled_for ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindNeedingPreAuth - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindNeedingPreAuth - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPayments(rows)
}

// FindNeedingCapture возвращает платежи с активным холдом, готовые к списанию:
// status=pre_authorized, наступило capture_scheduled_for, нет возврата
func (r *Repository) FindNeedingCapture(ctx context.Context, limit uint64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments p").
		Where(squirrel.Eq{"p.status": domain.PaymentStatusPreAuthorized}).
		Where("p.capture_scheduled_for IS NOT NULL AND p.capture_scheduled_for <= NOW()").
		Where("p.refunded_at IS NULL").
		OrderBy("p.capture_scheduled_for ASC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindNeedingCapture - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindNeedingCapture - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPayments(rows)
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"p.id": id}, "GetByID")
}

// GetByBookingID получает платеж по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"p.booking_id": bookingID}, "GetByBookingID")
}

// MarkPreAuthorized переводит платеж pending -> pre_authorized, записывая
// intent процессора и авторитативный срок истечения холда.
// Обновление условное: если платеж уже не pending, возвращается
// ErrStatusConflict - повторная пре-авторизация невозможна
func (r *Repository) MarkPreAuthorized(ctx context.Context, id int64, intentID string, expiresAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusPreAuthorized).
		Set("processor_intent_id", intentID).
		Set("authorization_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.PaymentStatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPreAuthorized - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, id, "MarkPreAuthorized")
}

// MarkCaptured переводит платеж pre_authorized -> captured, фиксируя
// фактически списанную процессором сумму и момент capture.
// Повторный вызов возвращает ErrStatusConflict, captured_at не перезаписывается
func (r *Repository) MarkCaptured(ctx context.Context, id int64, capturedAmount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusCaptured).
		Set("captured_amount", capturedAmount).
		Set("captured_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.PaymentStatusPreAuthorized}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCaptured - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, id, "MarkCaptured")
}

// MarkRefunded проставляет refunded_at. Допустим из любого нефинального
// состояния; из refunded и failed переход запрещён. После установки
// refunded_at платеж никогда больше не попадает в батч-выборки
func (r *Repository) MarkRefunded(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusRefunded).
		Set("refunded_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": []string{
			string(domain.PaymentStatusRefunded),
			string(domain.PaymentStatusFailed),
		}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, id, "MarkRefunded")
}

// UpdateTip изменяет сумму чаевых. Чаевые изменяемы только до capture
func (r *Repository) UpdateTip(ctx context.Context, id int64, tipAmount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("tip_amount", tipAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": []string{
			string(domain.PaymentStatusCaptured),
			string(domain.PaymentStatusRefunded),
		}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTip - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTip - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTip - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrTipNotMutable
	}

	return nil
}

// UpdateCapturedAmount корректирует зафиксированную сумму уже списанного
// платежа после частичного возврата. Единственный допустимый исходный
// статус - captured
func (r *Repository) UpdateCapturedAmount(ctx context.Context, id int64, capturedAmount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("captured_amount", capturedAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.PaymentStatusCaptured}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCapturedAmount - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, id, "UpdateCapturedAmount")
}

// getOne выполняет выборку одного платежа по условию
func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments p").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	p, err := r.scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, method, err)
	}

	return p, nil
}

// execConditional выполняет условное single-row обновление.
// rowsAffected == 0 означает либо отсутствие платежа, либо проигранную гонку
// статусов - различаем пробой существования
func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, query string, args []interface{}, id int64, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPayment сканирует одну строку платежа
func (r *Repository) scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.TipAmount,
		&p.CaptureMethod,
		&p.Status,
		&p.ProcessorIntentID,
		&p.ProcessorPaymentMethodID,
		&p.ProcessorCustomerID,
		&p.PreAuthScheduledFor,
		&p.CaptureScheduledFor,
		&p.AuthorizationExpiresAt,
		&p.CapturedAt,
		&p.CapturedAmount,
		&p.RefundedAt,
		&p.ProfessionalConnectedAccountID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// scanPayments сканирует результаты запроса в слайс платежей
func (r *Repository) scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
