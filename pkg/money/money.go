package money

import "math"

// Round округляет денежную сумму до центов по правилу банковского округления
// (round half to even). Используется для всех расчетных сумм, чтобы расчетная
// и фактически списанная процессором суммы не расходились на цент.
func Round(amount float64) float64 {
	return math.RoundToEven(amount*100) / 100
}

// Percentage возвращает долю percentage процентов от amount, округленную до центов
func Percentage(amount float64, percentage float64) float64 {
	return Round(amount * percentage / 100)
}

// ToCents конвертирует сумму в целое число центов (формат сумм процессора)
func ToCents(amount float64) int64 {
	return int64(math.RoundToEven(amount * 100))
}

// FromCents конвертирует целое число центов в сумму
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
