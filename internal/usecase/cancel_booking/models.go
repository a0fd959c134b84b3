package cancel_booking

import "time"

// CancelRequest запрос на отмену бронирования
type CancelRequest struct {
	BookingID int64  `json:"-"`
	Reason    string `json:"reason"`
}

// CancelResponse результат отмены: что было удержано и по какой ставке
type CancelResponse struct {
	BookingID     int64     `json:"bookingId"`
	ChargedAmount float64   `json:"chargedAmount"`
	ChargePercent float64   `json:"chargePercent"`
	CancelledAt   time.Time `json:"cancelledAt"`
}
