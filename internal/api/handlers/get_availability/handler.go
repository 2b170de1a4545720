package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidPeriod     = "некорректный период, ожидается YYYY-MM-DD"
)

type Handler struct {
	service      TimeSlotService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service TimeSlotService, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathInt64(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	query := r.URL.Query()
	from, to, err := ParsePeriod(query.Get("from"), query.Get("to"), h.timeProvider.Now())
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), providerID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/availability - Invalid period: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /providers/{id}/availability - Failed to get availability: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Availability retrieved: provider_id=%d, days=%d",
		providerID, len(availability))
	handlers.RespondJSON(w, http.StatusOK, FromDomainAvailability(providerID, from, to, availability))
}
