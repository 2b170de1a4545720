package refunds

import (
	"context"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	refundRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/refund"
)

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Refund, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Refund, error)
	TransitionStatus(ctx context.Context, id int64, upd refundRepo.StatusUpdate) (*domain.Refund, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Metrics интерфейс для записи бизнес-метрик
type Metrics interface {
	RecordRefundOutcome(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
