package mark_no_show

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда визит не найден
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyProcessed возвращается, когда визит уже отменён или помечен no-show
	ErrAlreadyProcessed = errors.New("appointment already cancelled or marked as no-show")

	// ErrNotStarted возвращается при попытке пометить no-show до начала визита
	ErrNotStarted = errors.New("appointment has not started yet")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("mark no-show: internal error")
)
