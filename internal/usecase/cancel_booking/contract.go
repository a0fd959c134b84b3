package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAppointmentByBookingID(ctx context.Context, bookingID int64) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
}

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	GetByProfessionalID(ctx context.Context, professionalID int64) (*domain.CancellationPolicy, error)
}

// ChargeApplier применяет списание к платежу или освобождает холд
type ChargeApplier interface {
	ApplyPartialCharge(ctx context.Context, p *domain.Payment, amount float64) (float64, error)
	ReleaseHold(ctx context.Context, p *domain.Payment) error
}

// Notifier интерфейс fire-and-forget уведомлений
type Notifier interface {
	NotifyAsync(bookingID int64, kind notifier.NotificationKind)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider источник текущего времени (подменяется в тестах)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системное время
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
