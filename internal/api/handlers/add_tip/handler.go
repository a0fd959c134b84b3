package add_tip

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PaymentService/internal/api/handlers"
	"github.com/m04kA/SMC-PaymentService/internal/api/middleware"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments"
	"github.com/m04kA/SMC-PaymentService/internal/service/payments/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "платеж не найден"
	msgInvalidTip         = "некорректная сумма чаевых"
	msgTipNotMutable      = "чаевые нельзя изменить после списания"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/tip
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/tip - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/tip - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddTipRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/tip - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.AddTip(r.Context(), &models.AddTipRequest{
		BookingID: bookingID,
		TipAmount: req.TipAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /bookings/{id}/tip - Payment not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/tip - Invalid tip amount: booking_id=%d, tip=%.2f",
				bookingID, req.TipAmount)
			handlers.RespondBadRequest(w, msgInvalidTip)

		case errors.Is(err, payments.ErrTipNotMutable):
			h.logger.Warn("POST /bookings/{id}/tip - Tip no longer mutable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgTipNotMutable)

		default:
			h.logger.Error("POST /bookings/{id}/tip - Failed to add tip: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/tip - Tip updated: booking_id=%d, user_id=%d, tip=%.2f",
		bookingID, userID, req.TipAmount)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
