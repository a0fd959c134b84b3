package models

import (
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на сохранение платежной политики профессионала
type UpdatePolicyRequest struct {
	ProfessionalID        int64   `json:"professionalId"`
	Enabled               bool    `json:"enabled"`
	ChargePercentUnder24h float64 `json:"chargePercentUnder24h"`
	ChargePercent24To48h  float64 `json:"chargePercent24To48h"`

	Deposit *DepositConfigRequest `json:"deposit,omitempty"`
}

// DepositConfigRequest конфигурация депозита в запросе
type DepositConfigRequest struct {
	Enabled bool    `json:"enabled"`
	Type    string  `json:"type"` // percentage | fixed
	Value   float64 `json:"value"`
}

// ToDomainPolicy конвертирует request в domain модель политики
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.CancellationPolicy {
	return &domain.CancellationPolicy{
		ProfessionalID:        r.ProfessionalID,
		Enabled:               r.Enabled,
		ChargePercentUnder24h: r.ChargePercentUnder24h,
		ChargePercent24To48h:  r.ChargePercent24To48h,
	}
}

// Response модели

// PolicyResponse ответ с платежной политикой профессионала
type PolicyResponse struct {
	ProfessionalID        int64   `json:"professionalId"`
	Enabled               bool    `json:"enabled"`
	ChargePercentUnder24h float64 `json:"chargePercentUnder24h"`
	ChargePercent24To48h  float64 `json:"chargePercent24To48h"`

	Deposit *DepositConfigResponse `json:"deposit,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// DepositConfigResponse конфигурация депозита в ответе
type DepositConfigResponse struct {
	Enabled bool    `json:"enabled"`
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
}

// FromDomainPolicy конвертирует domain модели в DTO
func FromDomainPolicy(p *domain.CancellationPolicy, deposit domain.DepositConfig) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		ProfessionalID:        p.ProfessionalID,
		Enabled:               p.Enabled,
		ChargePercentUnder24h: p.ChargePercentUnder24h,
		ChargePercent24To48h:  p.ChargePercent24To48h,
		UpdatedAt:             p.UpdatedAt,
	}

	if deposit.Enabled || deposit.Type != "" {
		resp.Deposit = &DepositConfigResponse{
			Enabled: deposit.Enabled,
			Type:    string(deposit.Type),
			Value:   deposit.Value,
		}
	}

	return resp
}
