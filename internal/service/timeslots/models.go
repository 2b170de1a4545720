package timeslots

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// AddSlotRequest запрос на добавление слота
// Время передается строками "HH:MM" и разбирается сервисом
type AddSlotRequest struct {
	ProviderID        int64
	Actor             domain.Actor
	Date              time.Time
	StartTime         string
	EndTime           string
	AvailableServices []int64
}

// AddSlotResult созданный слот и все слоты этой даты, отсортированные по началу
type AddSlotResult struct {
	Slot *domain.TimeSlot
	Day  []*domain.TimeSlot
}

// DeleteSlotResult оставшиеся слоты даты удаленного слота
type DeleteSlotResult struct {
	Date      time.Time
	Remaining []*domain.TimeSlot
}
