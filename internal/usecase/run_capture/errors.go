package run_capture

import "errors"

var (
	// ErrMissingIntent возвращается, когда у pre_authorized платежа нет
	// intent'а процессора. Аномалия данных: пропускаем, батч продолжается
	ErrMissingIntent = errors.New("run_capture: payment has no processor intent")

	// ErrAlreadyProcessed возвращается, когда платеж за время между выборкой
	// и обработкой успел уйти из состояния pre_authorized
	ErrAlreadyProcessed = errors.New("run_capture: payment is no longer pre-authorized")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("run_capture: internal error")
)
