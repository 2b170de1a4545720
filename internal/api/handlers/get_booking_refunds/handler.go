package get_booking_refunds

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/refunds"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service RefundService
	logger  Logger
}

func NewHandler(service RefundService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/refunds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/refunds - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/refunds - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByBooking(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, refunds.ErrBookingNotFound), errors.Is(err, refunds.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/refunds - Booking not found: booking_id=%d, user_id=%d", bookingID, actor.ID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/refunds - Failed to get refunds: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/refunds - Refunds retrieved successfully: booking_id=%d, count=%d",
		bookingID, len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRefundList(result))
}
