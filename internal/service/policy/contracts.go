package policy

import (
	"context"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
)

// PolicyRepository интерфейс репозитория платежных политик
type PolicyRepository interface {
	GetByProfessionalID(ctx context.Context, professionalID int64) (*domain.CancellationPolicy, error)
	Upsert(ctx context.Context, p *domain.CancellationPolicy) (*domain.CancellationPolicy, error)
	GetDepositConfig(ctx context.Context, professionalID int64) (domain.DepositConfig, error)
	UpsertDepositConfig(ctx context.Context, professionalID int64, cfg domain.DepositConfig) error
}

// TxManager выполняет fn в рамках одной транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
