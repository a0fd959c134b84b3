package domain

// Пороги тарифов политики отмены (часы до начала визита)
const (
	CancellationShortNoticeHours = 24
	CancellationLongNoticeHours  = 48
)

// Business validation constants
const (
	MinChargePercent = 0.0
	MaxChargePercent = 100.0

	// Минимальный депозит при включённой конфигурации депозита
	MinDepositAmount = 1.0

	MaxCancellationReasonLength = 500
)

// Batch job limits
const (
	DefaultBatchLimit = 100
	MaxBatchLimit     = 500
)

// ClampChargePercent приводит процент к допустимому диапазону 0-100
// Применяется на границе API до вызова калькулятора
func ClampChargePercent(percent float64) float64 {
	if percent < MinChargePercent {
		return MinChargePercent
	}
	if percent > MaxChargePercent {
		return MaxChargePercent
	}
	return percent
}
