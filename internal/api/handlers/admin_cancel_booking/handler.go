package admin_cancel_booking

import (
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	cancelHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/cancel_booking"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	cancelBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Missing user ID")
		cancelHandler.RespondFailure(w, http.StatusUnauthorized, msgMissingUserID)
		return
	}
	if !actor.IsAdmin() {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Access denied: user_id=%d, role=%s", actor.ID, actor.Type)
		cancelHandler.RespondFailure(w, http.StatusForbidden, msgForbidden)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid booking ID: %v", err)
		cancelHandler.RespondFailure(w, http.StatusBadRequest, msgInvalidBookingID)
		return
	}

	var req AdminCancelBookingRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid request body: booking_id=%d", bookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:   bookingID,
		Reason:      req.Reason,
		Actor:       actor,
		Notes:       req.Notes,
		IPAddress:   handlers.ClientIP(r),
		ForceRefund: req.ForceRefund,
	})
	if err != nil {
		status, message := cancelHandler.StatusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /admin/bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("POST /admin/bookings/{id}/cancel - Booking not cancelled: booking_id=%d, error=%v", bookingID, err)
		}
		cancelHandler.RespondFailure(w, status, message)
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/cancel - Booking cancelled: booking_id=%d, admin_id=%d, force_refund=%t, refund=%t",
		bookingID, actor.ID, req.ForceRefund, result.RefundInitiated)
	handlers.RespondJSON(w, http.StatusOK, cancelHandler.FromUseCaseResponse(result))
}
