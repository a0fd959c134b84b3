package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrTipNotMutable возвращается при попытке изменить чаевые после capture
	ErrTipNotMutable = errors.New("tip can no longer be changed")

	// ErrNotCharged возвращается, когда списание невозможно:
	// платеж никогда не был авторизован (наличные, нет карты на файле)
	ErrNotCharged = errors.New("payment was never authorized, nothing to charge")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments service: internal error")
)
