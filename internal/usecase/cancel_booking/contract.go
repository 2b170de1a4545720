package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CancelIfStatusIn(ctx context.Context, id int64, allowed []domain.BookingStatus, cancellation domain.Cancellation) (*domain.Booking, error)
}

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error)
}

// Notifier рассылка уведомлений клиенту
type Notifier interface {
	RefundInitiated(ctx context.Context, b *domain.Booking, r *domain.Refund) error
	BookingStatusChanged(ctx context.Context, b *domain.Booking) error
}

// Metrics интерфейс для записи бизнес-метрик
type Metrics interface {
	RecordCancellation(actorType string, refundInitiated bool)
	RecordRefundInitiated(refundType string, amount float64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
