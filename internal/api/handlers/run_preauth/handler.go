package run_preauth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-PaymentService/internal/api/handlers"
)

const (
	jobPath = "/internal/jobs/pre-auth"
	jobName = "preauth-job"

	// maxDetailsInMessage сколько ошибок включается в текст сообщения.
	// Полный список отдаётся в errorDetails
	maxDetailsInMessage = 3
)

type Handler struct {
	job     JobRunner
	replica Replicator
	metrics MetricsRecorder
	logger  Logger
}

// NewHandler создает новый handler запуска джоба пре-авторизации.
// replica и metrics могут быть nil, если репликация/метрики выключены
func NewHandler(job JobRunner, replica Replicator, metrics MetricsRecorder, logger Logger) *Handler {
	return &Handler{
		job:     job,
		replica: replica,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle GET /internal/jobs/pre-auth
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.job.Execute(r.Context())

	if h.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		h.metrics.ObserveJobRun(jobName, status, result.Processed, result.Errors, result.Duration)
	}

	if err != nil {
		h.logger.Error("GET %s - Job run failed: %v", jobPath, err)
		handlers.RespondJSON(w, http.StatusInternalServerError, JobErrorResponse{
			Success:  false,
			Error:    err.Error(),
			Duration: result.Duration.String(),
		})
		return
	}

	message := fmt.Sprintf("processed %d payment(s), %d error(s)", result.Processed, result.Errors)
	if result.Errors > 0 {
		details := result.ErrorDetails
		if len(details) > maxDetailsInMessage {
			details = details[:maxDetailsInMessage]
		}
		message = fmt.Sprintf("%s: %s", message, strings.Join(details, "; "))
	}

	h.logger.Info("GET %s - Job run finished: processed=%d, errors=%d, duration=%s",
		jobPath, result.Processed, result.Errors, result.Duration)

	handlers.RespondJSON(w, http.StatusOK, JobRunResponse{
		Success:      true,
		Message:      message,
		Processed:    result.Processed,
		Errors:       result.Errors,
		ErrorDetails: result.ErrorDetails,
		Duration:     result.Duration.String(),
	})

	// Цепочка окружений: после ответа дергаем тот же джоб на вторичном
	// окружении, не дожидаясь результата
	if h.replica != nil {
		h.replica.TriggerJobAsync(jobPath)
	}
}
