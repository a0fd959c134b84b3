package processor

import (
	"time"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
)

// CreateHeldIntentRequest запрос на создание intent'а с холдом (manual capture)
type CreateHeldIntentRequest struct {
	AmountCents     int64
	CustomerID      string
	PaymentMethodID string
	Route           domain.RouteTarget
	Metadata        map[string]string
}

// HeldIntent созданный intent с холдом
type HeldIntent struct {
	IntentID string
	// Авторитативный срок истечения холда, сообщённый процессором
	// nil, если процессор его не вернул
	AuthorizationExpiresAt *time.Time
}

// CaptureResult результат списания холда
type CaptureResult struct {
	CapturedAmountCents int64
}

// Intent состояние intent'а в процессоре
type Intent struct {
	ID                     string
	Status                 string
	AmountCents            int64
	AmountCapturableCents  int64
	AuthorizationExpiresAt *time.Time
}

// intentResponse JSON ответа процессора на операции с intent'ами
type intentResponse struct {
	ID                   string `json:"id"`
	Status               string `json:"status"`
	Amount               int64  `json:"amount"`
	AmountCapturable     int64  `json:"amount_capturable"`
	AmountReceived       int64  `json:"amount_received"`
	AuthorizationExpires *int64 `json:"authorization_expires_at"` // unix seconds
}

func (r *intentResponse) expiresAt() *time.Time {
	if r.AuthorizationExpires == nil {
		return nil
	}
	t := time.Unix(*r.AuthorizationExpires, 0).UTC()
	return &t
}

// errorResponse JSON ошибки процессора
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
