package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	cancelHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/cancel_booking"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимый переход статуса бронирования"
	msgStatusConflict     = "статус бронирования изменился, повторите запрос"
)

type Handler struct {
	service       BookingService
	cancelUseCase CancelBookingUseCase
	logger        Logger
}

func NewHandler(service BookingService, cancelUseCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		service:       service,
		cancelUseCase: cancelUseCase,
		logger:        logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/bookings/{id} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingStatusRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("PUT /providers/{id}/bookings/{id} - Invalid request body: booking_id=%d", bookingID)
		return
	}

	if domain.BookingStatus(req.Status) == domain.StatusCancelled {
		h.cancel(w, r, actor, providerID, bookingID, &req)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), bookingID, &models.UpdateStatusRequest{
		Actor:      actor,
		ProviderID: providerID,
		Status:     req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /providers/{id}/bookings/{id} - Booking not found: provider_id=%d, booking_id=%d",
				providerID, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PUT /providers/{id}/bookings/{id} - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/bookings/{id} - Invalid transition: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrStatusConflict):
			h.logger.Warn("PUT /providers/{id}/bookings/{id} - Status conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("PUT /providers/{id}/bookings/{id} - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/bookings/{id} - Status updated: booking_id=%d, status=%s", bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// cancel отмена провайдером: возврат рассчитывается как для отмены со стороны провайдера
func (h *Handler) cancel(
	w http.ResponseWriter,
	r *http.Request,
	actor domain.Actor,
	providerID, bookingID int64,
	req *UpdateBookingStatusRequest,
) {
	if !actor.IsAdmin() && !actor.ManagesProvider(providerID) {
		h.logger.Warn("PUT /providers/{id}/bookings/{id} - Access denied: provider_id=%d, user_id=%d",
			providerID, actor.ID)
		cancelHandler.RespondFailure(w, http.StatusForbidden, msgForbidden)
		return
	}

	result, err := h.cancelUseCase.Execute(r.Context(), &cancelBooking.Request{
		BookingID:  bookingID,
		Reason:     req.cancelReason(),
		Actor:      actor,
		Notes:      req.Notes,
		IPAddress:  handlers.ClientIP(r),
		ProviderID: &providerID,
	})
	if err != nil {
		status, message := cancelHandler.StatusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("PUT /providers/{id}/bookings/{id} - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
		} else {
			h.logger.Warn("PUT /providers/{id}/bookings/{id} - Booking not cancelled: booking_id=%d, error=%v",
				bookingID, err)
		}
		cancelHandler.RespondFailure(w, status, message)
		return
	}

	h.logger.Info("PUT /providers/{id}/bookings/{id} - Booking cancelled by provider: booking_id=%d, refund=%t",
		bookingID, result.RefundInitiated)
	handlers.RespondJSON(w, http.StatusOK, cancelHandler.FromUseCaseResponse(result))
}
