package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProviderNotFound   = "провайдер не найден"
	msgSlotNotFound       = "временной слот не найден или уже занят"
	msgPackageNotFound    = "пакет услуг не найден"
	msgPackageInactive    = "пакет услуг недоступен для бронирования"
	msgPackageNotOffered  = "пакет услуг недоступен в выбранном слоте"
	msgSlotInPast         = "выбранный временной слот уже прошел"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%d", userID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: provider_id=%d, slot_id=%s", req.ProviderID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: provider_id=%d, package_id=%d", req.ProviderID, req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrPackageInactive):
			h.logger.Warn("POST /bookings - Package inactive: package_id=%d", req.PackageID)
			handlers.RespondBadRequest(w, msgPackageInactive)

		case errors.Is(err, createBooking.ErrPackageNotOffered):
			h.logger.Warn("POST /bookings - Package not offered in slot: package_id=%d, slot_id=%s", req.PackageID, req.SlotID)
			handlers.RespondBadRequest(w, msgPackageNotOffered)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in the past: slot_id=%s", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, provider_id=%d, error=%v",
				userID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, provider_id=%d",
		result.ID, userID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
