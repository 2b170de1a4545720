package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория временных слотов
type SlotRepository interface {
	GetByID(ctx context.Context, providerID int64, slotID string) (*domain.TimeSlot, error)
	Delete(ctx context.Context, providerID int64, slotID string) error
}

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	Lock(ctx context.Context, providerID int64) error
	GetPackage(ctx context.Context, providerID, packageID int64) (*domain.ServicePackage, error)
}

// AvailabilityInvalidator сбрасывает кэш расписания провайдера
type AvailabilityInvalidator interface {
	InvalidateProvider(ctx context.Context, providerID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
