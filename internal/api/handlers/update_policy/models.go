package update_policy

import "github.com/m04kA/SMC-PaymentService/internal/service/policy/models"

// UpdatePolicyRequest HTTP request model
type UpdatePolicyRequest struct {
	Enabled               bool    `json:"enabled"`
	ChargePercentUnder24h float64 `json:"chargePercentUnder24h"`
	ChargePercent24To48h  float64 `json:"chargePercent24To48h"`

	Deposit *DepositConfigRequest `json:"deposit,omitempty"`
}

// DepositConfigRequest конфигурация депозита в запросе
type DepositConfigRequest struct {
	Enabled bool    `json:"enabled"`
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdatePolicyRequest) ToServiceRequest(professionalID int64) *models.UpdatePolicyRequest {
	req := &models.UpdatePolicyRequest{
		ProfessionalID:        professionalID,
		Enabled:               r.Enabled,
		ChargePercentUnder24h: r.ChargePercentUnder24h,
		ChargePercent24To48h:  r.ChargePercent24To48h,
	}

	if r.Deposit != nil {
		req.Deposit = &models.DepositConfigRequest{
			Enabled: r.Deposit.Enabled,
			Type:    r.Deposit.Type,
			Value:   r.Deposit.Value,
		}
	}

	return req
}
