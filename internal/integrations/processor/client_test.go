package processor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PaymentService/internal/domain"
	"github.com/m04kA/SMC-PaymentService/internal/integrations/processor"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newClient(serverURL string) *processor.Client {
	return processor.NewClient(serverURL, "sk_test_1", "usd", 5*time.Second, nopLogger{})
}

func TestCreateHeldIntent_SendsManualCaptureForm(t *testing.T) {
	var gotForm map[string]string
	var gotIdempotencyKey, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","status":"requires_capture","amount":10000,"amount_capturable":10000,"authorization_expires_at":1750000000}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	held, err := client.CreateHeldIntent(context.Background(), processor.CreateHeldIntentRequest{
		AmountCents:     10000,
		CustomerID:      "cus_1",
		PaymentMethodID: "pm_1",
		Route:           domain.RouteConnectedAccount("acct_42"),
		Metadata:        map[string]string{"booking_id": "7"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", held.IntentID)
	require.NotNil(t, held.AuthorizationExpiresAt)
	assert.Equal(t, time.Unix(1750000000, 0).UTC(), *held.AuthorizationExpiresAt)

	assert.Equal(t, "10000", gotForm["amount"])
	assert.Equal(t, "usd", gotForm["currency"])
	assert.Equal(t, "manual", gotForm["capture_method"])
	assert.Equal(t, "true", gotForm["confirm"])
	assert.Equal(t, "cus_1", gotForm["customer"])
	assert.Equal(t, "pm_1", gotForm["payment_method"])
	assert.Equal(t, "acct_42", gotForm["transfer_data[destination]"])
	assert.Equal(t, "7", gotForm["metadata[booking_id]"])
	assert.NotEmpty(t, gotIdempotencyKey)
	assert.Equal(t, "Bearer sk_test_1", gotAuth)
}

func TestCreateHeldIntent_PlatformRouteOmitsDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Empty(t, r.PostForm.Get("transfer_data[destination]"))

		w.Write([]byte(`{"id":"pi_platform","status":"requires_capture"}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	held, err := client.CreateHeldIntent(context.Background(), processor.CreateHeldIntentRequest{
		AmountCents:     500,
		PaymentMethodID: "pm_1",
		Route:           domain.RoutePlatform(),
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_platform", held.IntentID)
	assert.Nil(t, held.AuthorizationExpiresAt)
}

func TestCaptureIntent_ReturnsAmountReceived(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_123/capture", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "9500", r.PostForm.Get("amount_to_capture"))

		w.Write([]byte(`{"id":"pi_123","status":"succeeded","amount_received":9500}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	result, err := client.CaptureIntent(context.Background(), "pi_123", 9500)

	require.NoError(t, err)
	assert.Equal(t, int64(9500), result.CapturedAmountCents)
}

func TestGetIntent_MapsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)

		w.Write([]byte(`{"id":"pi_123","status":"requires_capture","amount":10000,"amount_capturable":10000}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	intent, err := client.GetIntent(context.Background(), "pi_123")

	require.NoError(t, err)
	assert.Equal(t, "requires_capture", intent.Status)
	assert.Equal(t, int64(10000), intent.AmountCapturableCents)
}

func TestCaptureIntent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	_, err := client.CaptureIntent(context.Background(), "pi_missing", 100)

	assert.ErrorIs(t, err, processor.ErrIntentNotFound)
}

func TestCaptureIntent_ProcessorErrorIncludesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	_, err := client.CaptureIntent(context.Background(), "pi_123", 100)

	require.ErrorIs(t, err, processor.ErrProcessor)
	assert.Contains(t, err.Error(), "card_declined")
}

func TestRefundIntent_SendsPartialAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/refunds", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_123", r.PostForm.Get("payment_intent"))
		assert.Equal(t, "7000", r.PostForm.Get("amount"))

		w.Write([]byte(`{"id":"re_1","status":"succeeded"}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	err := client.RefundIntent(context.Background(), "pi_123", 7000)

	assert.NoError(t, err)
}
