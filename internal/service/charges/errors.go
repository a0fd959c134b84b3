package charges

import "errors"

var (
	// ErrInvalidPercent возвращается при проценте вне диапазона 0-100
	ErrInvalidPercent = errors.New("charges: invalid charge percent")
)
