package update_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PaymentService/internal/api/handlers"
	"github.com/m04kA/SMC-PaymentService/internal/api/middleware"
	"github.com/m04kA/SMC-PaymentService/internal/service/policy"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidRates          = "тариф поздней отмены не может быть ниже тарифа ранней"
	msgInvalidPercent        = "процент должен быть в диапазоне 0-100"
	msgInvalidDeposit        = "некорректная конфигурация депозита"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/professionals/{professionalId}/payment-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalIDStr := vars["professionalId"]

	professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/payment-policy - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /professionals/{id}/payment-policy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/payment-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(professionalID))
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrInvalidRates):
			h.logger.Warn("PUT /professionals/{id}/payment-policy - Inconsistent rates: professional_id=%d",
				professionalID)
			handlers.RespondBadRequest(w, msgInvalidRates)

		case errors.Is(err, policy.ErrInvalidPercent):
			h.logger.Warn("PUT /professionals/{id}/payment-policy - Percent out of range: professional_id=%d",
				professionalID)
			handlers.RespondBadRequest(w, msgInvalidPercent)

		case errors.Is(err, policy.ErrInvalidDeposit):
			h.logger.Warn("PUT /professionals/{id}/payment-policy - Invalid deposit config: professional_id=%d",
				professionalID)
			handlers.RespondBadRequest(w, msgInvalidDeposit)

		default:
			h.logger.Error("PUT /professionals/{id}/payment-policy - Failed to update policy: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/payment-policy - Policy updated: professional_id=%d, user_id=%d",
		professionalID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
