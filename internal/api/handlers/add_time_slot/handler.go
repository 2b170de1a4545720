package add_time_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgProviderNotFound   = "провайдер не найден"
	msgOverlap            = "временной слот пересекается с существующим"
	msgInvalidTime        = "некорректное время слота: начало должно быть раньше окончания"
	msgPastDate           = "нельзя добавить слот на прошедшую дату"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/availability/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability/timeslots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /providers/{id}/availability/timeslots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddTimeSlotRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /providers/{id}/availability/timeslots - Invalid request body: provider_id=%d", providerID)
		return
	}

	serviceReq, err := req.ToServiceRequest(providerID, actor)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/availability/timeslots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrAccessDenied):
			h.logger.Warn("POST /providers/{id}/availability/timeslots - Access denied: provider_id=%d, user_id=%d",
				providerID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, timeslots.ErrProviderNotFound):
			h.logger.Warn("POST /providers/{id}/availability/timeslots - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, timeslots.ErrOverlap):
			h.logger.Warn("POST /providers/{id}/availability/timeslots - Overlap: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgOverlap)

		case errors.Is(err, timeslots.ErrInvalidTime), errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/availability/timeslots - Invalid time: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, timeslots.ErrPastDate):
			h.logger.Warn("POST /providers/{id}/availability/timeslots - Past date: provider_id=%d, date=%s", providerID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		default:
			h.logger.Error("POST /providers/{id}/availability/timeslots - Failed to add slot: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/availability/timeslots - Slot added: provider_id=%d, slot_id=%s",
		providerID, result.Slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResult(result))
}
