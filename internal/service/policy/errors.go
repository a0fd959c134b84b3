package policy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика не найдена
	ErrPolicyNotFound = errors.New("cancellation policy not found")

	// ErrInvalidRates возвращается, когда тариф under-24h меньше тарифа
	// 24-48h: более поздняя отмена никогда не дешевле.
	// Инвариант проверяется при сохранении конфигурации
	ErrInvalidRates = errors.New("under-24h rate must not be lower than 24-48h rate")

	// ErrInvalidPercent возвращается при проценте вне диапазона 0-100
	ErrInvalidPercent = errors.New("charge percent must be within [0, 100]")

	// ErrInvalidDeposit возвращается при некорректной конфигурации депозита
	ErrInvalidDeposit = errors.New("invalid deposit configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy service: internal error")
)
