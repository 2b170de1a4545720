package cancel_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

const (
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgCannotCancelStatus = "бронирование в статусе %s не может быть отменено, допустимые статусы: %s"
	msgCancellationFailed = "статус бронирования изменился, отмена не выполнена"
	msgInvalidInput       = "некорректные данные отмены"
	msgInternalError      = "внутренняя ошибка сервера"
	msgRefundFailed       = "не удалось создать возврат"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string  `json:"reason" validate:"required,max=500"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CancelBookingResponse HTTP response model
// При ошибке заполняются только success=false и message
type CancelBookingResponse struct {
	Success          bool                    `json:"success"`
	BookingCancelled bool                    `json:"bookingCancelled"`
	RefundInitiated  bool                    `json:"refundInitiated"`
	RefundID         *int64                  `json:"refundId,omitempty"`
	RefundType       *string                 `json:"refundType,omitempty"`
	RefundAmount     float64                 `json:"refundAmount"`
	Message          string                  `json:"message"`
	Error            *string                 `json:"error,omitempty"`
	Booking          *models.BookingResponse `json:"booking,omitempty"`
	Refund           *models.RefundResponse  `json:"refund,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		Success:          resp.Success,
		BookingCancelled: resp.BookingCancelled,
		RefundInitiated:  resp.RefundInitiated,
		RefundID:         resp.RefundID,
		RefundAmount:     resp.RefundAmount,
		Message:          resp.Message,
		Booking:          models.FromDomainBooking(resp.Booking),
	}
	if resp.RefundType != nil {
		out.RefundType = ptr.Ptr(string(*resp.RefundType))
	}
	if resp.Refund != nil {
		out.Refund = models.FromDomainRefund(resp.Refund)
	}
	// Детали внутренней ошибки клиенту не отдаем
	if resp.Error != nil {
		out.Error = ptr.Ptr(msgRefundFailed)
	}
	return out
}

// StatusFor сопоставляет ошибку use case с HTTP статусом и сообщением
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, cancelBooking.ErrBookingNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, cancelBooking.ErrInvalidStatus):
		var statusErr *cancelBooking.StatusError
		if errors.As(err, &statusErr) {
			return http.StatusBadRequest, fmt.Sprintf(msgCannotCancelStatus, statusErr.Current, joinStatuses(statusErr.Allowed))
		}
		return http.StatusBadRequest, msgCannotCancel
	case errors.Is(err, cancelBooking.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, cancelBooking.ErrCancellationFailed):
		return http.StatusConflict, msgCancellationFailed
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// RespondFailure отправляет {success:false, message} с указанным статусом
func RespondFailure(w http.ResponseWriter, status int, message string) {
	handlers.RespondJSON(w, status, &CancelBookingResponse{Success: false, Message: message})
}

func joinStatuses(statuses []domain.BookingStatus) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
