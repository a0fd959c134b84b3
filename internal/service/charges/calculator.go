package charges

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/pkg/money"
)

// Чистые функции расчета сумм платежного цикла.
// Никакого I/O - все входные данные передаются параметрами.

// ChargeBreakdown результат расчета частичного списания
type ChargeBreakdown struct {
	Percentage float64 // Применённый процент (0-100)
	Amount     float64 // Сумма списания, округлённая до центов
}

// CancellationCharge вычисляет списание при отмене бронирования по политике
// профессионала. Процент зависит от времени, оставшегося до начала визита:
// менее 24 часов - тариф under24h, 24-48 часов - тариф 24to48h, более 48 - 0.
// При выключенной политике списание всегда нулевое.
func CancellationCharge(policy *domain.CancellationPolicy, totalAmount float64, appointmentStart, now time.Time) ChargeBreakdown {
	if policy == nil || !policy.Enabled {
		return ChargeBreakdown{}
	}

	hoursUntil := appointmentStart.Sub(now).Hours()

	var percentage float64
	switch {
	case hoursUntil < domain.CancellationShortNoticeHours:
		percentage = policy.ChargePercentUnder24h
	case hoursUntil < domain.CancellationLongNoticeHours:
		percentage = policy.ChargePercent24To48h
	default:
		percentage = 0
	}

	return ChargeBreakdown{
		Percentage: percentage,
		Amount:     money.Percentage(totalAmount, percentage),
	}
}

// NoShowCharge вычисляет списание за неявку. Процент задается профессионалом
// на каждый инцидент; валидируется на границе API (0-100)
func NoShowCharge(totalAmount float64, chargePercent float64) (float64, error) {
	if chargePercent < domain.MinChargePercent || chargePercent > domain.MaxChargePercent {
		return 0, fmt.Errorf("%w: charge percent %.2f is out of range [0, 100]", ErrInvalidPercent, chargePercent)
	}

	return money.Percentage(totalAmount, chargePercent), nil
}

// DepositAmount вычисляет размер депозита за услугу по конфигурации
// профессионала. При включённой конфигурации действует минимальный порог $1
func DepositAmount(servicePrice float64, cfg domain.DepositConfig) float64 {
	if !cfg.Enabled {
		return 0
	}

	var amount float64
	switch cfg.Type {
	case domain.DepositTypeFixed:
		amount = money.Round(cfg.Value)
	default:
		amount = money.Percentage(servicePrice, cfg.Value)
	}

	if amount < domain.MinDepositAmount {
		return domain.MinDepositAmount
	}

	return amount
}
