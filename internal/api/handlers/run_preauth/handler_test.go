package run_preauth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PaymentService/internal/api/handlers/run_preauth"
	"github.com/m04kA/SMC-PaymentService/pkg/batchrun"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockJobRunner struct {
	result batchrun.Result
	err    error
}

func (m *mockJobRunner) Execute(ctx context.Context) (batchrun.Result, error) {
	return m.result, m.err
}

type mockReplicator struct {
	triggeredPaths []string
}

func (m *mockReplicator) TriggerJobAsync(jobPath string) {
	m.triggeredPaths = append(m.triggeredPaths, jobPath)
}

func TestHandle_ReportsProcessedAndErrors(t *testing.T) {
	job := &mockJobRunner{
		result: batchrun.Result{
			Processed:    4,
			Errors:       1,
			ErrorDetails: []string{"17: missing payment method token"},
			Duration:     120 * time.Millisecond,
		},
	}
	replica := &mockReplicator{}
	handler := run_preauth.NewHandler(job, replica, nil, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodGet, "/internal/jobs/pre-auth", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp run_preauth.JobRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.Processed)
	assert.Equal(t, 1, resp.Errors)
	assert.Contains(t, resp.Message, "processed 4 payment(s), 1 error(s)")
	assert.Contains(t, resp.Message, "missing payment method token")
	require.Len(t, resp.ErrorDetails, 1)

	// Реплика дергается после успешного ответа
	assert.Equal(t, []string{"/internal/jobs/pre-auth"}, replica.triggeredPaths)
}

func TestHandle_FatalErrorIsInternal(t *testing.T) {
	job := &mockJobRunner{
		result: batchrun.Result{Duration: 10 * time.Millisecond},
		err:    errors.New("fetch candidates: connection refused"),
	}
	replica := &mockReplicator{}
	handler := run_preauth.NewHandler(job, replica, nil, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodGet, "/internal/jobs/pre-auth", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp run_preauth.JobErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "connection refused")

	// Проваленный запуск не реплицируется
	assert.Empty(t, replica.triggeredPaths)
}

func TestHandle_NilReplicaAndMetrics(t *testing.T) {
	job := &mockJobRunner{result: batchrun.Result{Processed: 0, Errors: 0}}
	handler := run_preauth.NewHandler(job, nil, nil, nopLogger{})

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodGet, "/internal/jobs/pre-auth", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
