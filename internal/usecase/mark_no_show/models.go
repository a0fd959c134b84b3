package mark_no_show

import "time"

// noShowReason причина, записываемая визиту при пометке no-show
const noShowReason = "client did not show up"

// NoShowRequest запрос на пометку визита как no-show
type NoShowRequest struct {
	AppointmentID int64   `json:"-"`
	ChargePercent float64 `json:"chargePercent"`
}

// NoShowResponse результат пометки: что было удержано и по какой ставке
type NoShowResponse struct {
	AppointmentID int64     `json:"appointmentId"`
	BookingID     int64     `json:"bookingId"`
	ChargedAmount float64   `json:"chargedAmount"`
	ChargePercent float64   `json:"chargePercent"`
	MarkedAt      time.Time `json:"markedAt"`
}
