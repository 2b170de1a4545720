package timeslots

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	ListByDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.TimeSlot, error)
	ListByRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.TimeSlot, error)
	GetByID(ctx context.Context, providerID int64, slotID string) (*domain.TimeSlot, error)
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Delete(ctx context.Context, providerID int64, slotID string) error
	DeleteByDate(ctx context.Context, providerID int64, date time.Time) (int64, error)
}

// ProviderLocker блокирует строку провайдера в текущей транзакции
type ProviderLocker interface {
	Lock(ctx context.Context, providerID int64) error
}

// Cache интерфейс кэша расписаний
type Cache interface {
	Get(ctx context.Context, key string, value any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
	Clear(ctx context.Context, prefix string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock источник времени в часовом поясе приложения
type Clock interface {
	Now() time.Time
}

// Metrics интерфейс для записи бизнес-метрик
type Metrics interface {
	RecordSlotOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
