package cancel_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.Actor.Type.IsValid() {
		return fmt.Errorf("%w: unknown actor type %q", ErrInvalidInput, req.Actor.Type)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if req.ForceRefund && !req.Actor.IsAdmin() {
		return fmt.Errorf("%w: only administrators can force a refund", ErrInvalidInput)
	}

	return nil
}

// inScope проверяет, что бронирование попадает в область видимости запроса
func inScope(b *domain.Booking, req *Request) bool {
	if req.OwnerUserID != nil && b.UserID != *req.OwnerUserID {
		return false
	}
	if req.ProviderID != nil && b.ProviderID != *req.ProviderID {
		return false
	}
	return true
}

func statusList(statuses []domain.BookingStatus) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
