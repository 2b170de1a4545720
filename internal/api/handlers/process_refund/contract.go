package process_refund

import (
	"context"

	processRefund "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/process_refund"
)

type ProcessRefundUseCase interface {
	Execute(ctx context.Context, req *processRefund.Request) (*processRefund.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
