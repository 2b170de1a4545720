package add_time_slot

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_availability"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

// AddTimeSlotRequest HTTP request model
type AddTimeSlotRequest struct {
	Date     string        `json:"date" validate:"required,date"`
	TimeSlot TimeSlotInput `json:"timeSlot"`
}

// TimeSlotInput интервал [start, end) в формате HH:MM
type TimeSlotInput struct {
	Start             string  `json:"start" validate:"required,clock"`
	End               string  `json:"end" validate:"required,clock"`
	AvailableServices []int64 `json:"availableServices,omitempty" validate:"omitempty,dive,gt=0"`
}

// AddTimeSlotResponse HTTP response model
type AddTimeSlotResponse struct {
	Slot      get_availability.TimeSlotResponse   `json:"slot"`
	Date      string                              `json:"date"`
	TimeSlots []get_availability.TimeSlotResponse `json:"timeSlots"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddTimeSlotRequest) ToServiceRequest(providerID int64, actor domain.Actor) (*timeslots.AddSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &timeslots.AddSlotRequest{
		ProviderID:        providerID,
		Actor:             actor,
		Date:              date,
		StartTime:         r.TimeSlot.Start,
		EndTime:           r.TimeSlot.End,
		AvailableServices: r.TimeSlot.AvailableServices,
	}, nil
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(result *timeslots.AddSlotResult) *AddTimeSlotResponse {
	return &AddTimeSlotResponse{
		Slot:      get_availability.FromDomainSlot(result.Slot),
		Date:      result.Slot.Date.Format(domain.DateFormat),
		TimeSlots: get_availability.FromDomainSlots(result.Day),
	}
}
