package delete_time_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgMissingTarget     = "укажите slotId или date"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
	msgProviderNotFound  = "провайдер не найден"
	msgSlotNotFound      = "временной слот не найден"
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

// Handle DELETE /api/v1/providers/{providerId}/availability/timeslots
// Query params: slotId (удалить один слот) или date (удалить все слоты даты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	slotID := query.Get("slotId")
	dateStr := query.Get("date")

	switch {
	case slotID != "":
		result, err := h.service.DeleteSlot(r.Context(), providerID, actor, slotID)
		if err != nil {
			h.respondError(w, providerID, err)
			return
		}
		h.logger.Info("DELETE /providers/{id}/availability/timeslots - Slot deleted: provider_id=%d, slot_id=%s",
			providerID, slotID)
		handlers.RespondJSON(w, http.StatusOK, fromDeleteResult(result))

	case dateStr != "":
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		removed, err := h.service.DeleteSlotsForDate(r.Context(), providerID, actor, date)
		if err != nil {
			h.respondError(w, providerID, err)
			return
		}
		h.logger.Info("DELETE /providers/{id}/availability/timeslots - Date cleared: provider_id=%d, date=%s, deleted=%d",
			providerID, dateStr, removed)
		handlers.RespondJSON(w, http.StatusOK, &DeleteDateResponse{Date: dateStr, Deleted: removed})

	default:
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Missing slotId and date")
		handlers.RespondBadRequest(w, msgMissingTarget)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, providerID int64, err error) {
	switch {
	case errors.Is(err, timeslots.ErrAccessDenied):
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Access denied: provider_id=%d", providerID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, timeslots.ErrProviderNotFound):
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Provider not found: provider_id=%d", providerID)
		handlers.RespondNotFound(w, msgProviderNotFound)

	case errors.Is(err, timeslots.ErrSlotNotFound):
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Slot not found: provider_id=%d", providerID)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, timeslots.ErrInvalidInput):
		h.logger.Warn("DELETE /providers/{id}/availability/timeslots - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgMissingTarget)

	default:
		h.logger.Error("DELETE /providers/{id}/availability/timeslots - Failed to delete slots: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondInternalError(w)
	}
}
