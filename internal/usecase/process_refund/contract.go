package process_refund

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	refundRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/refund"
)

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Refund, error)
	TransitionStatus(ctx context.Context, id int64, upd refundRepo.StatusUpdate) (*domain.Refund, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// PaymentGateway возврат средств через платежный шлюз
type PaymentGateway interface {
	Refund(ctx context.Context, paymentID string, amount float64, notes map[string]string) (string, error)
}

// Notifier рассылка уведомлений клиенту
type Notifier interface {
	RefundProcessed(ctx context.Context, b *domain.Booking, r *domain.Refund) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для записи бизнес-метрик
type Metrics interface {
	RecordRefundOutcome(status string)
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
