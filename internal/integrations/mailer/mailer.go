package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Email письмо в формате HTML
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Dialer отправляет собранные сообщения (gomail.Dialer)
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer отправка писем через SMTP
type Mailer struct {
	dialer Dialer
	from   string
}

// New создает Mailer для SMTP сервера
func New(host string, port int, username, password, from string) *Mailer {
	return NewWithDialer(gomail.NewDialer(host, port, username, password), from)
}

func NewWithDialer(dialer Dialer, from string) *Mailer {
	return &Mailer{dialer: dialer, from: from}
}

// Send отправляет письмо
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrInvalidRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/html", email.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, email.To, err)
	}

	return nil
}
