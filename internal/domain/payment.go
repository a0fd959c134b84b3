package domain

import "time"

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPreAuthorized PaymentStatus = "pre_authorized"
	PaymentStatusCaptured      PaymentStatus = "captured"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusFailed        PaymentStatus = "failed"
)

// CaptureMethod represents how a payment is captured by the processor
type CaptureMethod string

const (
	// CaptureMethodManual холд с отдельным шагом capture (основной режим батч-джобов)
	CaptureMethodManual CaptureMethod = "manual"
	// CaptureMethodAutomatic списание сразу при создании intent'а
	CaptureMethodAutomatic CaptureMethod = "automatic"
)

// Payment represents a payment in the orchestration lifecycle
type Payment struct {
	ID        int64
	BookingID int64

	Amount    float64 // Сумма услуги/депозита к списанию
	TipAmount float64 // Чаевые, добавляются после бронирования, изменяемы до capture

	CaptureMethod CaptureMethod
	Status        PaymentStatus

	// Ссылки на сущности процессора
	ProcessorIntentID        *string // ID intent'а после создания холда
	ProcessorPaymentMethodID *string // Токен способа оплаты клиента
	ProcessorCustomerID      *string // Клиент в процессоре

	// Целевые метки времени для отбора в батч-джобы
	PreAuthScheduledFor *time.Time
	CaptureScheduledFor *time.Time

	// Авторитативный срок истечения холда, сообщённый процессором
	// Локально не вычисляется
	AuthorizationExpiresAt *time.Time

	CapturedAt *time.Time
	// Фактически списанная процессором сумма (может быть меньше amount+tip
	// при частичном capture по политике отмены)
	CapturedAmount *float64
	RefundedAt     *time.Time

	// Connected account профессионала; заполнен только при маршрутизации
	// через destination charge
	ProfessionalConnectedAccountID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCaptureAmount returns the full amount to capture (service portion plus tip)
func (p *Payment) TotalCaptureAmount() float64 {
	return p.Amount + p.TipAmount
}

// CanBePreAuthorized returns true if the payment is eligible for a pre-auth hold
func (p *Payment) CanBePreAuthorized() bool {
	return p.Status == PaymentStatusPending && p.RefundedAt == nil
}

// CanBeCaptured returns true if the payment holds an authorization that can be captured
func (p *Payment) CanBeCaptured() bool {
	return p.Status == PaymentStatusPreAuthorized && p.RefundedAt == nil
}

// IsCaptured returns true if the payment has been captured
func (p *Payment) IsCaptured() bool {
	return p.Status == PaymentStatusCaptured
}

// IsRefunded returns true if the payment has been refunded
// Платеж с refunded_at никогда больше не попадает в батч-выборки
func (p *Payment) IsRefunded() bool {
	return p.RefundedAt != nil
}

// HasPaymentMethod returns true if a processor payment method token is on file
func (p *Payment) HasPaymentMethod() bool {
	return p.ProcessorPaymentMethodID != nil && *p.ProcessorPaymentMethodID != ""
}

// TipIsMutable returns true while the tip amount can still be changed
func (p *Payment) TipIsMutable() bool {
	return p.Status != PaymentStatusCaptured && p.Status != PaymentStatusRefunded
}
