package add_tip

// AddTipRequest HTTP request model
type AddTipRequest struct {
	TipAmount float64 `json:"tipAmount"`
}
