package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	policyRepo "github.com/m04kA/SMC-PaymentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-PaymentService/internal/service/policy/models"
)

// Service сервис для работы с платежными политиками профессионалов
type Service struct {
	policyRepo PolicyRepository
	txManager  TxManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByProfessionalID получает платежную политику профессионала
func (s *Service) GetByProfessionalID(ctx context.Context, professionalID int64) (*models.PolicyResponse, error) {
	p, err := s.policyRepo.GetByProfessionalID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("GetByProfessionalID: policy for professional=%d not found", professionalID)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("GetByProfessionalID: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetByProfessionalID - repository error: %v", ErrInternal, err)
	}

	deposit, err := s.policyRepo.GetDepositConfig(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetByProfessionalID: failed to get deposit config for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetByProfessionalID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(p, deposit), nil
}

// Update сохраняет платежную политику профессионала.
// Инварианты проверяются при сохранении: нарушенная пара тарифов
// или депозит вне допустимых границ не доходят до хранилища
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: saving policy for professional=%d, enabled=%t, under24h=%.2f, 24to48h=%.2f",
		req.ProfessionalID, req.Enabled, req.ChargePercentUnder24h, req.ChargePercent24To48h)

	p := req.ToDomainPolicy()
	if err := s.validatePolicy(p); err != nil {
		s.logger.Warn("Update: validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	var deposit domain.DepositConfig
	if req.Deposit != nil {
		deposit = domain.DepositConfig{
			Enabled: req.Deposit.Enabled,
			Type:    domain.DepositType(req.Deposit.Type),
			Value:   req.Deposit.Value,
		}
		if err := s.validateDeposit(deposit); err != nil {
			s.logger.Warn("Update: deposit validation failed for professional=%d: %v", req.ProfessionalID, err)
			return nil, err
		}
	}

	// Политика и конфигурация депозита сохраняются атомарно
	var saved *domain.CancellationPolicy
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.policyRepo.Upsert(ctx, p)
		if err != nil {
			return err
		}

		if req.Deposit != nil {
			return s.policyRepo.UpsertDepositConfig(ctx, req.ProfessionalID, deposit)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: policy for professional=%d saved", req.ProfessionalID)
	return models.FromDomainPolicy(saved, deposit), nil
}

func (s *Service) validatePolicy(p *domain.CancellationPolicy) error {
	for _, percent := range []float64{p.ChargePercentUnder24h, p.ChargePercent24To48h} {
		if percent < domain.MinChargePercent || percent > domain.MaxChargePercent {
			return fmt.Errorf("%w: got %.2f", ErrInvalidPercent, percent)
		}
	}

	if !p.RatesAreConsistent() {
		return fmt.Errorf("%w: under24h=%.2f, 24to48h=%.2f",
			ErrInvalidRates, p.ChargePercentUnder24h, p.ChargePercent24To48h)
	}

	return nil
}

func (s *Service) validateDeposit(cfg domain.DepositConfig) error {
	switch cfg.Type {
	case domain.DepositTypePercentage:
		if cfg.Value < domain.MinChargePercent || cfg.Value > domain.MaxChargePercent {
			return fmt.Errorf("%w: percentage %.2f is out of range [0, 100]", ErrInvalidDeposit, cfg.Value)
		}
	case domain.DepositTypeFixed:
		if cfg.Enabled && cfg.Value < domain.MinDepositAmount {
			return fmt.Errorf("%w: fixed amount %.2f is below the $%.0f minimum",
				ErrInvalidDeposit, cfg.Value, domain.MinDepositAmount)
		}
	default:
		return fmt.Errorf("%w: unknown deposit type %q", ErrInvalidDeposit, cfg.Type)
	}

	return nil
}
