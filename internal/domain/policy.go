package domain

import "time"

// CancellationPolicy represents a professional's cancellation charge policy
// Инвариант: ChargePercentUnder24h >= ChargePercent24To48h
// (более поздняя отмена никогда не дешевле)
type CancellationPolicy struct {
	ID             int64
	ProfessionalID int64

	Enabled bool

	// Процент от полной стоимости при отмене менее чем за 24 часа
	ChargePercentUnder24h float64
	// Процент от полной стоимости при отмене за 24-48 часов
	ChargePercent24To48h float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatesAreConsistent returns true if the shorter-notice rate is not lower
// than the longer-notice rate
func (p *CancellationPolicy) RatesAreConsistent() bool {
	return p.ChargePercentUnder24h >= p.ChargePercent24To48h
}

// DepositType represents how a deposit amount is derived from the service price
type DepositType string

const (
	DepositTypePercentage DepositType = "percentage"
	DepositTypeFixed      DepositType = "fixed"
)

// DepositConfig represents a professional's deposit configuration
type DepositConfig struct {
	Enabled bool
	Type    DepositType
	// Value: процент цены услуги для percentage, сумма для fixed
	Value float64
}
