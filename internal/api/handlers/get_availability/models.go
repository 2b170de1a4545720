package get_availability

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/clock"
)

// defaultPeriodDays период по умолчанию, если to не указан
const defaultPeriodDays = 30

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ProviderID   int64                         `json:"providerId"`
	From         string                        `json:"from"`
	To           string                        `json:"to"`
	Availability map[string][]TimeSlotResponse `json:"availability"`
}

// TimeSlotResponse модель временного слота
type TimeSlotResponse struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	Start             string  `json:"start"`
	End               string  `json:"end"`
	DurationMinutes   int     `json:"durationMinutes"`
	AvailableServices []int64 `json:"availableServices"`
}

// FromDomainSlot конвертирует слот в HTTP модель
func FromDomainSlot(s *domain.TimeSlot) TimeSlotResponse {
	services := s.AvailableServices
	if services == nil {
		services = []int64{}
	}
	return TimeSlotResponse{
		ID:                s.ID,
		Date:              s.Date.Format(domain.DateFormat),
		Start:             s.StartTime.String(),
		End:               s.EndTime.String(),
		DurationMinutes:   s.DurationMinutes(),
		AvailableServices: services,
	}
}

// FromDomainSlots конвертирует список слотов; пустой список не превращается в null
func FromDomainSlots(slots []*domain.TimeSlot) []TimeSlotResponse {
	out := make([]TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromDomainSlot(s))
	}
	return out
}

// FromDomainAvailability конвертирует расписание в HTTP response
func FromDomainAvailability(providerID int64, from, to time.Time, availability domain.Availability) *AvailabilityResponse {
	days := make(map[string][]TimeSlotResponse, len(availability))
	for date, slots := range availability {
		days[date] = FromDomainSlots(slots)
	}
	return &AvailabilityResponse{
		ProviderID:   providerID,
		From:         from.Format(domain.DateFormat),
		To:           to.Format(domain.DateFormat),
		Availability: days,
	}
}

// ParsePeriod разбирает from/to (YYYY-MM-DD) в часовом поясе приложения
// Без from период начинается сегодня, без to длится defaultPeriodDays
func ParsePeriod(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	from := clock.StartOfDay(now)
	if fromStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, fromStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	to := from.AddDate(0, 0, defaultPeriodDays)
	if toStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, toStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}
