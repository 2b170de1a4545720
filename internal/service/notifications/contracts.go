package notifications

import (
	"context"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/events"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/mailer"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/sms"
)

// EmailSender отправка писем
type EmailSender interface {
	Send(ctx context.Context, email mailer.Email) error
}

// SMSSender отправка SMS
type SMSSender interface {
	Send(ctx context.Context, msg sms.Message) error
}

// EventPublisher публикация событий в шину
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// InAppStore хранилище in-app уведомлений
type InAppStore interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// ContactDirectory контактные данные пользователей
type ContactDirectory interface {
	GetContact(ctx context.Context, userID int64) (*domain.UserContact, error)
}

// Metrics интерфейс для записи метрик доставки
type Metrics interface {
	RecordNotification(channel string, success bool)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
