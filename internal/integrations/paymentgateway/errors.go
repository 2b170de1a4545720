package paymentgateway

import "errors"

var (
	// ErrInvalidAmount возвращается при неположительной сумме возврата
	ErrInvalidAmount = errors.New("payment gateway: refund amount must be positive")

	// ErrMissingPayment возвращается, когда не указан ID платежа
	ErrMissingPayment = errors.New("payment gateway: payment id is empty")

	// ErrRefundFailed возвращается, когда шлюз отклонил возврат
	ErrRefundFailed = errors.New("payment gateway: refund failed")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("payment gateway: invalid response")
)
