package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного процессора.
// Тонкая граница: создание холда, списание, чтение состояния, возврат.
// Никаких ретраев - проваленный вызов остаётся ошибкой элемента, платеж
// будет выбран снова следующим запуском джоба.
type Client struct {
	baseURL    string
	secretKey  string
	currency   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента процессора
// timeout ограничивает каждый вызов, чтобы один зависший запрос
// не останавливал весь батч
func NewClient(baseURL, secretKey, currency string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		currency:  currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateHeldIntent создает intent с ручным capture (холд средств).
// При маршрутизации на connected account оформляется destination charge.
// Idempotency-Key защищает от двойного холда при сетевых повторах
func (c *Client) CreateHeldIntent(ctx context.Context, req CreateHeldIntentRequest) (*HeldIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", c.currency)
	form.Set("capture_method", "manual")
	form.Set("confirm", "true")
	if req.CustomerID != "" {
		form.Set("customer", req.CustomerID)
	}
	form.Set("payment_method", req.PaymentMethodID)
	if !req.Route.IsPlatform() {
		form.Set("transfer_data[destination]", req.Route.ConnectedAccountID)
	}
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	resp, err := c.post(ctx, "/v1/payment_intents", form, uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &HeldIntent{
		IntentID:               resp.ID,
		AuthorizationExpiresAt: resp.expiresAt(),
	}, nil
}

// CaptureIntent списывает amountCents с ранее созданного холда
func (c *Client) CaptureIntent(ctx context.Context, intentID string, amountCents int64) (*CaptureResult, error) {
	form := url.Values{}
	form.Set("amount_to_capture", strconv.FormatInt(amountCents, 10))

	resp, err := c.post(ctx, fmt.Sprintf("/v1/payment_intents/%s/capture", intentID), form, uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &CaptureResult{CapturedAmountCents: resp.AmountReceived}, nil
}

// GetIntent возвращает текущее состояние intent'а в процессоре
func (c *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/payment_intents/"+intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	return &Intent{
		ID:                     resp.ID,
		Status:                 resp.Status,
		AmountCents:            resp.Amount,
		AmountCapturableCents:  resp.AmountCapturable,
		AuthorizationExpiresAt: resp.expiresAt(),
	}, nil
}

// CancelIntent отменяет intent, освобождая холд без списания
func (c *Client) CancelIntent(ctx context.Context, intentID string) error {
	_, err := c.post(ctx, fmt.Sprintf("/v1/payment_intents/%s/cancel", intentID), url.Values{}, uuid.NewString())
	return err
}

// RefundIntent оформляет возврат amountCents по intent'у
// Используется для частичной корректировки уже списанного платежа при отмене
func (c *Client) RefundIntent(ctx context.Context, intentID string, amountCents int64) error {
	form := url.Values{}
	form.Set("payment_intent", intentID)
	form.Set("amount", strconv.FormatInt(amountCents, 10))

	_, err := c.post(ctx, "/v1/refunds", form, uuid.NewString())
	return err
}

// post выполняет form-encoded POST с идемпотентным ключом
func (c *Client) post(ctx context.Context, path string, form url.Values, idempotencyKey string) (*intentResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	return c.do(httpReq)
}

func (c *Client) do(httpReq *http.Request) (*intentResponse, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrIntentNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error.Message == "" {
			return nil, fmt.Errorf("%w: status code %d", ErrProcessor, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s (code=%s)", ErrProcessor, errResp.Error.Message, errResp.Error.Code)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var intentResp intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intentResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &intentResp, nil
}
