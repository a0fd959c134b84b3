package routing

import "errors"

var (
	// ErrMissingConnectedAccount возвращается, когда платеж должен быть
	// маршрутизирован на connected account профессионала, но аккаунт не заведён.
	// Ошибка конфигурации: фатальна для элемента, но не для батча
	ErrMissingConnectedAccount = errors.New("routing: professional has no connected account on file")
)
