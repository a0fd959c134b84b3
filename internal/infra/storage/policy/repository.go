package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PaymentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с платежными политиками профессионалов
// (политика отмены + конфигурация депозита, одна строка на профессионала)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessionalID получает политику отмены профессионала
func (r *Repository) GetByProfessionalID(ctx context.Context, professionalID int64) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"enabled",
		"charge_percent_under_24h",
		"charge_percent_24_to_48h",
		"created_at",
		"updated_at",
	).
		From("cancellation_policies").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.CancellationPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ProfessionalID,
		&p.Enabled,
		&p.ChargePercentUnder24h,
		&p.ChargePercent24To48h,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalID - scan policy: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Upsert создает или обновляет политику отмены профессионала
func (r *Repository) Upsert(ctx context.Context, p *domain.CancellationPolicy) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellation_policies").
		Columns(
			"professional_id",
			"enabled",
			"charge_percent_under_24h",
			"charge_percent_24_to_48h",
		).
		Values(
			p.ProfessionalID,
			p.Enabled,
			p.ChargePercentUnder24h,
			p.ChargePercent24To48h,
		).
		Suffix(`ON CONFLICT (professional_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			charge_percent_under_24h = EXCLUDED.charge_percent_under_24h,
			charge_percent_24_to_48h = EXCLUDED.charge_percent_24_to_48h,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetDepositConfig получает конфигурацию депозита профессионала
// Отсутствие строки означает выключенный депозит
func (r *Repository) GetDepositConfig(ctx context.Context, professionalID int64) (domain.DepositConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"enabled",
		"deposit_type",
		"deposit_value",
	).
		From("deposit_configs").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return domain.DepositConfig{}, fmt.Errorf("%w: GetDepositConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.DepositConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.Enabled,
		&cfg.Type,
		&cfg.Value,
	)

	if err == sql.ErrNoRows {
		return domain.DepositConfig{}, nil
	}
	if err != nil {
		return domain.DepositConfig{}, fmt.Errorf("%w: GetDepositConfig - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// UpsertDepositConfig создает или обновляет конфигурацию депозита профессионала
func (r *Repository) UpsertDepositConfig(ctx context.Context, professionalID int64, cfg domain.DepositConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("deposit_configs").
		Columns(
			"professional_id",
			"enabled",
			"deposit_type",
			"deposit_value",
		).
		Values(
			professionalID,
			cfg.Enabled,
			cfg.Type,
			cfg.Value,
		).
		Suffix(`ON CONFLICT (professional_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			deposit_type = EXCLUDED.deposit_type,
			deposit_value = EXCLUDED.deposit_value,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertDepositConfig - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertDepositConfig - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
