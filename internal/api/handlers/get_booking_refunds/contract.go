package get_booking_refunds

import (
	"context"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

type RefundService interface {
	ListByBooking(ctx context.Context, bookingID int64, actor domain.Actor) ([]*domain.Refund, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
