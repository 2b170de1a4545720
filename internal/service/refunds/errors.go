package refunds

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("refunds: booking not found")

	// ErrRefundNotFound возвращается, когда возврат не найден
	ErrRefundNotFound = errors.New("refunds: refund not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("refunds: access denied")

	// ErrInvalidRefundStatus возвращается, когда возврат уже не в статусе pending
	ErrInvalidRefundStatus = errors.New("refunds: refund is not pending")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("refunds: internal error")
)
