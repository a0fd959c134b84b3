package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotificationKind тип события для сервиса уведомлений
type NotificationKind string

const (
	KindPreAuthorized      NotificationKind = "payment_pre_authorized"
	KindCaptured           NotificationKind = "payment_captured"
	KindCancellationCharge NotificationKind = "cancellation_charged"
	KindNoShowCharge       NotificationKind = "no_show_charged"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		log:     log,
	}
}

type notifyRequest struct {
	BookingID int64  `json:"bookingId"`
	Kind      string `json:"kind"`
}

// Notify отправляет уведомление синхронно
func (c *Client) Notify(ctx context.Context, bookingID int64, kind NotificationKind) error {
	payload, err := json.Marshal(notifyRequest{BookingID: bookingID, Kind: string(kind)})
	if err != nil {
		return fmt.Errorf("notifier client: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/internal/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notifier client: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notifier client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notifier client: unexpected status code %d", resp.StatusCode)
	}

	return nil
}

// NotifyAsync отправляет уведомление fire-and-forget: отдельная горутина,
// собственный контекст с таймаутом, ошибка логируется и глотается.
// Движение денег - авторитативный результат; проваленное уведомление
// не должно его откатить или задержать
func (c *Client) NotifyAsync(bookingID int64, kind NotificationKind) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Notify(ctx, bookingID, kind); err != nil {
			c.log.Warn("NotifyAsync: notification %s for booking=%d failed: %v", kind, bookingID, err)
			return
		}
		c.log.Info("NotifyAsync: notification %s for booking=%d sent", kind, bookingID)
	}()
}
