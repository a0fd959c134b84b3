package domain

import "time"

// PaymentMethod represents how the client pays for the service
type PaymentMethod string

const (
	// PaymentMethodOnline оплата картой через процессор
	PaymentMethodOnline PaymentMethod = "online"
	// PaymentMethodCash оплата наличными на месте оказания услуги
	PaymentMethodCash PaymentMethod = "cash"
)

// Booking represents one client-professional service agreement
// Неизменяемо после создания appointment'а, кроме статуса отмены/no-show
type Booking struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64

	TotalAmount   float64 // Полная стоимость услуги
	DepositAmount float64 // Депозит; 0 если не требуется
	PaymentMethod PaymentMethod

	// Connected account профессионала в процессоре (payout destination)
	ProfessionalConnectedAccountID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOnlinePayment returns true if the booking is paid by card through the processor
func (b *Booking) IsOnlinePayment() bool {
	return b.PaymentMethod == PaymentMethodOnline
}

// IsDirectPlatformPayment returns true if the card-side charge is a flat platform
// service fee rather than the professional's revenue.
// Наличная оплата без депозита: картой списывается только комиссия платформы,
// деньги профессионала по карте не проходят
func (b *Booking) IsDirectPlatformPayment() bool {
	return !b.IsOnlinePayment() && b.DepositAmount == 0
}

// AppointmentStatus represents the stored lifecycle of an appointment.
// Хранится только факт отмены/no-show; завершённость выводится из времени
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// Appointment is linked 1:1 to a Booking
type Appointment struct {
	ID        int64
	BookingID int64

	StartTime time.Time
	EndTime   time.Time

	Status             AppointmentStatus
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment was cancelled or marked as a no-show
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusNoShow
}

// IsCompleted returns true if the appointment has ended and was not cancelled.
// Статус завершённости выводится из времени, отдельно не хранится
func (a *Appointment) IsCompleted(now time.Time) bool {
	return a.EndTime.Before(now) && !a.IsCancelled()
}
