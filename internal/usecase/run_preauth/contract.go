package run_preauth

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	FindNeedingPreAuth(ctx context.Context, limit uint64) ([]*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	MarkPreAuthorized(ctx context.Context, id int64, intentID string, expiresAt *time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ProcessorGateway интерфейс шлюза платежного процессора
type ProcessorGateway interface {
	CreateHeldIntent(ctx context.Context, req processor.CreateHeldIntentRequest) (*processor.HeldIntent, error)
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
