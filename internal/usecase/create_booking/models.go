package create_booking

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64                // ID пользователя
	ProviderID      int64                // ID провайдера
	SlotID          string               // ID временного слота
	PackageID       int64                // ID пакета услуг
	PaymentMethod   domain.PaymentMethod // Способ оплаты
	PetName         *string              // Кличка питомца (опционально)
	PetType         *string
	PetBreed        *string
	SpecialRequests *string // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	UserID        int64            // ID пользователя
	ProviderID    int64            // ID провайдера
	PackageID     int64            // ID пакета
	BookingDate   time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время окончания
	Status        string           // Статус бронирования
	PaymentStatus string           // Статус оплаты
	PaymentMethod string           // Способ оплаты

	// Денормализованные данные
	PackageName     string  // Название пакета
	Price           float64 // Цена пакета
	PetName         *string
	PetType         *string
	PetBreed        *string
	SpecialRequests *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
