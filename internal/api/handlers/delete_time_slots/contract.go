package delete_time_slots

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

type TimeSlotService interface {
	DeleteSlot(ctx context.Context, providerID int64, actor domain.Actor, slotID string) (*timeslots.DeleteSlotResult, error)
	DeleteSlotsForDate(ctx context.Context, providerID int64, actor domain.Actor, date time.Time) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
