package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или недоступно вызывающему
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrInvalidStatus возвращается, когда бронирование в статусе, из которого отмена невозможна
	ErrInvalidStatus = errors.New("cancel_booking: booking cannot be cancelled in its current status")

	// ErrCancellationFailed возвращается, когда статус изменился между чтением и отменой
	ErrCancellationFailed = errors.New("cancel_booking: booking status changed, cancellation failed")

	// ErrRefundProcessing не прерывает отмену: бронирование отменено, но возврат не создан
	ErrRefundProcessing = errors.New("cancel_booking: failed to initiate refund")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

// StatusError уточняет ErrInvalidStatus текущим статусом бронирования
type StatusError struct {
	Current domain.BookingStatus
	Allowed []domain.BookingStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: current status is %q, allowed: %s", ErrInvalidStatus, e.Current, statusList(e.Allowed))
}

func (e *StatusError) Unwrap() error {
	return ErrInvalidStatus
}
