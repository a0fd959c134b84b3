package mark_no_show

import (
	"context"

	noShowUC "github.com/m04kA/SMC-PaymentService/internal/usecase/mark_no_show"
)

// NoShowUseCase интерфейс usecase пометки визита как no-show
type NoShowUseCase interface {
	Execute(ctx context.Context, req *noShowUC.NoShowRequest) (*noShowUC.NoShowResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
