package models

import (
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
)

// Request модели

// AddTipRequest запрос на изменение чаевых
type AddTipRequest struct {
	BookingID int64   `json:"bookingId"`
	TipAmount float64 `json:"tipAmount"`
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
	TipAmount float64 `json:"tipAmount"`
	Status    string  `json:"status"`

	CaptureMethod string `json:"captureMethod"`

	ProcessorIntentID *string `json:"processorIntentId,omitempty"`

	PreAuthScheduledFor    *time.Time `json:"preAuthScheduledFor,omitempty"`
	CaptureScheduledFor    *time.Time `json:"captureScheduledFor,omitempty"`
	AuthorizationExpiresAt *time.Time `json:"authorizationExpiresAt,omitempty"`

	CapturedAt     *time.Time `json:"capturedAt,omitempty"`
	CapturedAmount *float64   `json:"capturedAmount,omitempty"`
	RefundedAt     *time.Time `json:"refundedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:                     p.ID,
		BookingID:              p.BookingID,
		Amount:                 p.Amount,
		TipAmount:              p.TipAmount,
		Status:                 string(p.Status),
		CaptureMethod:          string(p.CaptureMethod),
		ProcessorIntentID:      p.ProcessorIntentID,
		PreAuthScheduledFor:    p.PreAuthScheduledFor,
		CaptureScheduledFor:    p.CaptureScheduledFor,
		AuthorizationExpiresAt: p.AuthorizationExpiresAt,
		CapturedAt:             p.CapturedAt,
		CapturedAmount:         p.CapturedAmount,
		RefundedAt:             p.RefundedAt,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
