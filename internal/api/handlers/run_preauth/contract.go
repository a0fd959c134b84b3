package run_preauth

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PaymentService/pkg/batchrun"
)

// JobRunner интерфейс батч-джоба пре-авторизации
type JobRunner interface {
	Execute(ctx context.Context) (batchrun.Result, error)
}

// Replicator запускает тот же джоб на вторичном окружении fire-and-forget
type Replicator interface {
	TriggerJobAsync(jobPath string)
}

// MetricsRecorder записывает метрики запуска джоба
type MetricsRecorder interface {
	ObserveJobRun(job, status string, processed, errors int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
