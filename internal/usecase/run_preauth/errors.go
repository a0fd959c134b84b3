package run_preauth

import "errors"

var (
	// ErrMissingPaymentMethod возвращается, когда у платежа нет токена способа
	// оплаты. Аномалия данных: такой записи в выборке быть не должно.
	// Элемент пропускается, батч продолжается
	ErrMissingPaymentMethod = errors.New("run_preauth: payment has no payment method token on file")

	// ErrAlreadyProcessed возвращается, когда платеж за время между выборкой
	// и обработкой успел уйти из состояния pending (отмена клиентом, возврат,
	// параллельный запуск джоба)
	ErrAlreadyProcessed = errors.New("run_preauth: payment is no longer pending")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("run_preauth: internal error")
)
