package mark_no_show

// MarkNoShowRequest HTTP request model
type MarkNoShowRequest struct {
	ChargePercent float64 `json:"chargePercent"`
}
