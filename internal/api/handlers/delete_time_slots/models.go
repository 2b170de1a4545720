package delete_time_slots

import (
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/get_availability"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
)

// DeleteSlotResponse ответ на удаление одного слота: оставшиеся слоты той же даты
type DeleteSlotResponse struct {
	Date      string                              `json:"date"`
	TimeSlots []get_availability.TimeSlotResponse `json:"timeSlots"`
}

// DeleteDateResponse ответ на удаление всех слотов даты
type DeleteDateResponse struct {
	Date    string `json:"date"`
	Deleted int64  `json:"deleted"`
}

func fromDeleteResult(result *timeslots.DeleteSlotResult) *DeleteSlotResponse {
	return &DeleteSlotResponse{
		Date:      result.Date.Format(domain.DateFormat),
		TimeSlots: get_availability.FromDomainSlots(result.Remaining),
	}
}
