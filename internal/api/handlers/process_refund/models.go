package process_refund

import (
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	processRefund "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/process_refund"
)

// ProcessRefundRequest HTTP request model; тело запроса необязательно
type ProcessRefundRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ProcessRefundResponse HTTP response model
type ProcessRefundResponse struct {
	Refund  *models.RefundResponse  `json:"refund"`
	Booking *models.BookingResponse `json:"booking"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processRefund.Response) *ProcessRefundResponse {
	return &ProcessRefundResponse{
		Refund:  models.FromDomainRefund(resp.Refund),
		Booking: models.FromDomainBooking(resp.Booking),
	}
}
