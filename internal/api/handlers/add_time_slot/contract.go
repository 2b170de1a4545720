package add_time_slot

import (
	"context"

	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

type TimeSlotService interface {
	AddSlot(ctx context.Context, req *timeslots.AddSlotRequest) (*timeslots.AddSlotResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
