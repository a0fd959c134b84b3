package update_policy

import (
	"context"

	"github.com/m04kA/SMC-PaymentService/internal/service/policy/models"
)

// PolicyService интерфейс сервиса платежных политик
type PolicyService interface {
	Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
