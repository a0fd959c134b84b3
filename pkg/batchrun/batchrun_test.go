package batchrun_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PaymentService/pkg/batchrun"
)

// ---- mock job ----

type mockJob struct {
	items    []int64
	fetchErr error
	failIDs  map[int64]error

	processed []int64
}

func (j *mockJob) Name() string { return "test-job" }

func (j *mockJob) Fetch(_ context.Context) ([]int64, error) {
	if j.fetchErr != nil {
		return nil, j.fetchErr
	}
	return j.items, nil
}

func (j *mockJob) Key(item int64) string {
	return fmt.Sprintf("%d", item)
}

func (j *mockJob) Process(_ context.Context, item int64) error {
	if err, ok := j.failIDs[item]; ok {
		return err
	}
	j.processed = append(j.processed, item)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- tests ----

func TestRun_ItemErrorIsIsolated(t *testing.T) {
	job := &mockJob{
		items:   []int64{1, 2, 3, 4, 5},
		failIDs: map[int64]error{3: errors.New("processor unavailable")},
	}

	result, err := batchrun.Run[int64](context.Background(), job, nopLogger{})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Processed)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.ErrorDetails, 1)
	assert.Equal(t, "3: processor unavailable", result.ErrorDetails[0])

	// Элементы после сбойного обработаны
	assert.Equal(t, []int64{1, 2, 4, 5}, job.processed)
}

func TestRun_EmptySetIsIdempotent(t *testing.T) {
	job := &mockJob{items: nil}

	for i := 0; i < 2; i++ {
		result, err := batchrun.Run[int64](context.Background(), job, nopLogger{})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Processed)
		assert.Equal(t, 0, result.Errors)
		assert.Empty(t, result.ErrorDetails)
	}
}

func TestRun_FetchFailureIsFatal(t *testing.T) {
	job := &mockJob{fetchErr: errors.New("connection refused")}

	result, err := batchrun.Run[int64](context.Background(), job, nopLogger{})

	require.Error(t, err)
	assert.ErrorIs(t, err, batchrun.ErrFetchFailed)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 0, result.Errors)
}
