package processor

import "errors"

var (
	// ErrProcessor возвращается, когда процессор отклонил операцию
	// Сообщение процессора включается в обёртку. Клиент не ретраит:
	// политика повторов живёт на уровне джобов через повторную выборку
	ErrProcessor = errors.New("processor client: operation declined")

	// ErrIntentNotFound возвращается, когда intent не найден в процессоре
	ErrIntentNotFound = errors.New("processor client: payment intent not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("processor client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе процессора
	ErrInvalidResponse = errors.New("processor client: invalid response")
)
