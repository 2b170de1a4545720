package domain

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

// TimeSlot represents a bookable window published by a provider
type TimeSlot struct {
	ID                string // "<date>-<unix ts>-<random>"
	ProviderID        int64
	Date              time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	AvailableServices []int64 // ID пакетов, доступных в слоте; пусто = все пакеты провайдера
	CreatedAt         time.Time
}

// Overlaps returns true if [start, end) intersects the slot.
// Touching intervals (end == other.start) do not overlap.
func (s *TimeSlot) Overlaps(start, end types.TimeString) bool {
	return start.IsBefore(s.EndTime) && end.IsAfter(s.StartTime)
}

// OffersPackage returns true if the package may be booked in this slot
func (s *TimeSlot) OffersPackage(packageID int64) bool {
	if len(s.AvailableServices) == 0 {
		return true
	}
	for _, id := range s.AvailableServices {
		if id == packageID {
			return true
		}
	}
	return false
}

// DurationMinutes returns the slot length
func (s *TimeSlot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// Availability slots of a provider grouped by date ("2006-01-02"), each day sorted by start time
type Availability map[string][]*TimeSlot
