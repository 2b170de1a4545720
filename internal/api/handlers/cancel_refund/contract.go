package cancel_refund

import (
	"context"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

type RefundService interface {
	Cancel(ctx context.Context, refundID int64, actor domain.Actor, notes *string) (*domain.Refund, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
