package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PaymentService/internal/api/handlers"
	"github.com/m04kA/SMC-PaymentService/internal/api/middleware"
	noShowUC "github.com/m04kA/SMC-PaymentService/internal/usecase/mark_no_show"
)

const (
	msgInvalidAppointmentID = "некорректный ID визита"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "визит не найден"
	msgAlreadyProcessed     = "визит уже отменён или помечен как no-show"
	msgNotStarted           = "визит ещё не начался"
)

type Handler struct {
	usecase NoShowUseCase
	logger  Logger
}

func NewHandler(usecase NoShowUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/no-show - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/no-show - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req MarkNoShowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/no-show - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.usecase.Execute(r.Context(), &noShowUC.NoShowRequest{
		AppointmentID: appointmentID,
		ChargePercent: req.ChargePercent,
	})
	if err != nil {
		switch {
		case errors.Is(err, noShowUC.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/no-show - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, noShowUC.ErrAlreadyProcessed):
			h.logger.Warn("POST /appointments/{id}/no-show - Already processed: appointment_id=%d",
				appointmentID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, noShowUC.ErrNotStarted):
			h.logger.Warn("POST /appointments/{id}/no-show - Not started yet: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgNotStarted)

		default:
			h.logger.Error("POST /appointments/{id}/no-show - Failed to mark: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/no-show - Appointment marked: appointment_id=%d, user_id=%d, charged=%.2f",
		appointmentID, userID, result.ChargedAmount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
