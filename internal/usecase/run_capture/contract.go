package run_capture

import (
	"context"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	FindNeedingCapture(ctx context.Context, limit uint64) ([]*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	MarkCaptured(ctx context.Context, id int64, capturedAmount float64) error
}

// ProcessorGateway интерфейс шлюза платежного процессора
type ProcessorGateway interface {
	CaptureIntent(ctx context.Context, intentID string, amountCents int64) (*processor.CaptureResult, error)
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
