package cancel_booking

import (
	"context"

	cancelUC "github.com/m04kA/SMC-PaymentService/internal/usecase/cancel_booking"
)

// CancelUseCase интерфейс usecase отмены бронирования
type CancelUseCase interface {
	Execute(ctx context.Context, req *cancelUC.CancelRequest) (*cancelUC.CancelResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
