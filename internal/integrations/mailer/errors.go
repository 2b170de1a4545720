package mailer

import "errors"

var (
	// ErrInvalidRecipient возвращается, когда адрес получателя не указан
	ErrInvalidRecipient = errors.New("mailer: recipient address is empty")

	// ErrSend возвращается при ошибке отправки через SMTP
	ErrSend = errors.New("mailer: failed to send email")
)
