package add_tip

import (
	"context"

	"github.com/m04kA/SMC-PaymentService/internal/service/payments/models"
)

// PaymentService интерфейс сервиса платежей
type PaymentService interface {
	AddTip(ctx context.Context, req *models.AddTipRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
