package payments

import (
	"context"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	MarkCaptured(ctx context.Context, id int64, capturedAmount float64) error
	MarkRefunded(ctx context.Context, id int64) error
	UpdateCapturedAmount(ctx context.Context, id int64, capturedAmount float64) error
	UpdateTip(ctx context.Context, id int64, tipAmount float64) error
}

// ProcessorGateway интерфейс шлюза платежного процессора
type ProcessorGateway interface {
	CaptureIntent(ctx context.Context, intentID string, amountCents int64) (*processor.CaptureResult, error)
	CancelIntent(ctx context.Context, intentID string) error
	RefundIntent(ctx context.Context, intentID string, amountCents int64) error
	GetIntent(ctx context.Context, intentID string) (*processor.Intent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
