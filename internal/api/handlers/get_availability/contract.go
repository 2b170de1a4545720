package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

type TimeSlotService interface {
	GetAvailability(ctx context.Context, providerID int64, from, to time.Time) (domain.Availability, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
