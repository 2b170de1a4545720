package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	// Пустой способ оплаты допустим: клиент выберет его позже
	if req.PaymentMethod != "" && !isKnownPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must be at most %d characters",
			ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	return nil
}

// validatePackage проверяет, что пакет можно забронировать в слоте
func validatePackage(pkg *domain.ServicePackage, slot *domain.TimeSlot) error {
	if !pkg.IsActive {
		return ErrPackageInactive
	}
	if !slot.OffersPackage(pkg.ID) {
		return ErrPackageNotOffered
	}
	return nil
}

// slotStart возвращает момент начала слота в часовом поясе now
// Дата слота хранится без часового пояса, поэтому берутся только год, месяц и день
func slotStart(slot *domain.TimeSlot, now time.Time) time.Time {
	y, m, d := slot.Date.Date()
	return slot.StartTime.On(time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
}

func isKnownPaymentMethod(m domain.PaymentMethod) bool {
	return m == domain.PaymentMethodCash || m.IsOnline()
}
