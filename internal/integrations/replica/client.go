package replica

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент дублирования запуска джобов на вторичное окружение.
// Используется только для неавторитативной staging-репликации
type Client struct {
	secondaryURL string
	secret       string
	httpClient   *http.Client
	timeout      time.Duration
	log          Logger
}

// NewClient создает новый экземпляр клиента репликации
func NewClient(secondaryURL, secret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		secondaryURL: secondaryURL,
		secret:       secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
		log:     log,
	}
}

// TriggerJobAsync запускает тот же джоб на вторичном окружении fire-and-forget.
// Никогда не ожидается: ответ первичного джоба не должен зависеть от реплики
func (c *Client) TriggerJobAsync(jobPath string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.trigger(ctx, jobPath); err != nil {
			c.log.Warn("TriggerJobAsync: secondary invocation of %s failed: %v", jobPath, err)
			return
		}
		c.log.Info("TriggerJobAsync: secondary invocation of %s dispatched", jobPath)
	}()
}

func (c *Client) trigger(ctx context.Context, jobPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.secondaryURL+jobPath, nil)
	if err != nil {
		return fmt.Errorf("replica client: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("replica client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("replica client: unexpected status code %d", resp.StatusCode)
	}

	return nil
}
