package get_policy

import (
	"context"

	"github.com/m04kA/SMC-PaymentService/internal/service/policy/models"
)

// PolicyService интерфейс сервиса платежных политик
type PolicyService interface {
	GetByProfessionalID(ctx context.Context, professionalID int64) (*models.PolicyResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
