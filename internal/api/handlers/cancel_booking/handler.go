package cancel_booking

import (
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	cancelBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/bookings/{bookingId}/cancel
// Отмена клиентом: доступны только собственные бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing user ID")
		RespondFailure(w, http.StatusUnauthorized, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		RespondFailure(w, http.StatusBadRequest, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: booking_id=%d", bookingID)
		return
	}

	// Через этот маршрут отменяет владелец бронирования, роль из gateway не учитывается
	ownerID := actor.ID
	owner := domain.Actor{ID: actor.ID, Type: domain.ActorCustomer}
	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:   bookingID,
		Reason:      req.Reason,
		Actor:       owner,
		Notes:       req.Notes,
		IPAddress:   handlers.ClientIP(r),
		OwnerUserID: &ownerID,
	})
	if err != nil {
		status, message := StatusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("POST /bookings/{id}/cancel - Booking not cancelled: booking_id=%d, user_id=%d, error=%v",
				bookingID, actor.ID, err)
		}
		RespondFailure(w, status, message)
		return
	}

	if result.Error != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Booking cancelled without refund: booking_id=%d, error=%v",
			bookingID, result.Error)
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d, refund=%t",
		bookingID, actor.ID, result.RefundInitiated)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
