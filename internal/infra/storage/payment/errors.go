package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrStatusConflict возвращается, когда условное обновление не прошло:
	// текущий статус платежа не совпал с ожидаемым. Так проигравший гонку
	// запуск джоба получает no-op вместо повторного списания
	ErrStatusConflict = errors.New("payment.repository: payment status conflict")

	// ErrTipNotMutable возвращается при попытке изменить чаевые после capture
	ErrTipNotMutable = errors.New("payment.repository: tip can no longer be changed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
