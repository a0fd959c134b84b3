package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrReasonRequired возвращается при пустой или слишком длинной причине отмены
	ErrReasonRequired = errors.New("cancellation reason is required")

	// ErrAlreadyCancelled возвращается, когда визит уже отменён или помечен no-show
	ErrAlreadyCancelled = errors.New("appointment already cancelled")

	// ErrAlreadyCompleted возвращается при попытке отменить завершённый визит
	ErrAlreadyCompleted = errors.New("appointment already completed")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("cancel booking: internal error")
)
