package process_refund

import "errors"

var (
	// ErrRefundNotFound возвращается, когда возврат не найден
	ErrRefundNotFound = errors.New("process_refund: refund not found")

	// ErrBookingNotFound возвращается, когда бронирование возврата не найдено
	ErrBookingNotFound = errors.New("process_refund: booking not found")

	// ErrInvalidRefundStatus возвращается, когда возврат уже не в статусе pending
	ErrInvalidRefundStatus = errors.New("process_refund: refund is not pending")

	// ErrAccessDenied возвращается, когда вызывающий не администратор
	ErrAccessDenied = errors.New("process_refund: access denied")

	// ErrGatewayUnavailable возвращается, когда платежный шлюз не настроен
	ErrGatewayUnavailable = errors.New("process_refund: payment gateway is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_refund: internal error")
)
