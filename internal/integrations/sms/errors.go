package sms

import "errors"

var (
	// ErrInvalidPhone возвращается, когда номер получателя не указан
	ErrInvalidPhone = errors.New("sms client: recipient phone is empty")

	// ErrRejected возвращается, когда шлюз отклонил сообщение
	ErrRejected = errors.New("sms client: message rejected by gateway")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("sms client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("sms client: invalid response")
)
