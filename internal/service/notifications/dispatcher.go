package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/events"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/mailer"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/sms"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

// Каналы доставки (метка метрики)
const (
	channelInApp = "in_app"
	channelEmail = "email"
	channelSMS   = "sms"
	channelEvent = "event"
)

// Channels каналы доставки; nil канал пропускается
type Channels struct {
	InApp  InAppStore
	Email  EmailSender
	SMS    SMSSender
	Events EventPublisher
}

// Dispatcher рассылает уведомления о бронированиях по всем настроенным каналам
// Каждый канал работает независимо: сбой одного не мешает остальным
type Dispatcher struct {
	channels Channels
	contacts ContactDirectory
	currency string
	metrics  Metrics
	clock    TimeProvider
	logger   Logger
}

// NewDispatcher создает новый экземпляр диспетчера уведомлений
func NewDispatcher(
	channels Channels,
	contacts ContactDirectory,
	currency string,
	metrics Metrics,
	clock TimeProvider,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		contacts: contacts,
		currency: currency,
		metrics:  metrics,
		clock:    clock,
		logger:   logger,
	}
}

// message содержимое уведомления для всех каналов
type message struct {
	kind     domain.NotificationType
	entityID int64
	title    string
	text     string
	details  []string
	event    events.Event
}

// BookingStatusChanged уведомляет клиента об изменении статуса бронирования
func (d *Dispatcher) BookingStatusChanged(ctx context.Context, b *domain.Booking) error {
	title, text := statusText(b)

	var details []string
	if b.IsCancelled() && b.CancellationReason != nil && *b.CancellationReason != "" {
		details = append(details, "Reason: "+*b.CancellationReason)
	}

	eventType := events.TypeBookingStatusChanged
	if b.IsCancelled() {
		eventType = events.TypeBookingCancelled
	}

	return d.dispatch(ctx, b.UserID, message{
		kind:     domain.NotificationBookingStatus,
		entityID: b.ID,
		title:    title,
		text:     text,
		details:  details,
		event: events.Event{
			Type:       eventType,
			BookingID:  b.ID,
			UserID:     b.UserID,
			ProviderID: b.ProviderID,
			Status:     string(b.Status),
			Reason:     ptr.Value(b.CancellationReason),
		},
	})
}

// RefundInitiated уведомляет клиента о созданном возврате
func (d *Dispatcher) RefundInitiated(ctx context.Context, b *domain.Booking, r *domain.Refund) error {
	text := fmt.Sprintf("A refund of %.2f %s for your booking #%d has been initiated.", r.Amount, d.currency, b.ID)

	details := []string{"Refund reference: #" + fmt.Sprint(r.ID)}
	if r.RefundType == domain.RefundTypeManual {
		details = append(details, "The refund will be processed manually by our team.")
	} else {
		details = append(details, "The amount will be returned to your original payment method.")
	}

	return d.dispatch(ctx, b.UserID, message{
		kind:     domain.NotificationRefund,
		entityID: b.ID,
		title:    "Refund initiated",
		text:     text,
		details:  details,
		event:    refundEvent(events.TypeRefundInitiated, b, r),
	})
}

// RefundProcessed уведомляет клиента об итоге обработки возврата
func (d *Dispatcher) RefundProcessed(ctx context.Context, b *domain.Booking, r *domain.Refund) error {
	title := "Refund completed"
	text := fmt.Sprintf("Your refund of %.2f %s for booking #%d has been processed.", r.Amount, d.currency, b.ID)
	if r.Status == domain.RefundFailed {
		title = "Refund failed"
		text = fmt.Sprintf("We could not process your refund of %.2f %s for booking #%d. Our team will contact you.",
			r.Amount, d.currency, b.ID)
	}

	return d.dispatch(ctx, b.UserID, message{
		kind:     domain.NotificationRefund,
		entityID: b.ID,
		title:    title,
		text:     text,
		event:    refundEvent(events.TypeRefundProcessed, b, r),
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, userID int64, msg message) error {
	var errs []error

	record := func(channel string, err error) {
		d.metrics.RecordNotification(channel, err == nil)
		if err != nil {
			d.logger.Warn("notifications: %s delivery failed for user=%d, %s: %v", channel, userID, msg.title, err)
			errs = append(errs, fmt.Errorf("%s: %w", channel, err))
		}
	}

	if d.channels.InApp != nil {
		record(channelInApp, d.channels.InApp.Create(ctx, &domain.Notification{
			UserID:   userID,
			Title:    msg.title,
			Message:  msg.text,
			Type:     msg.kind,
			EntityID: ptr.Ptr(msg.entityID),
		}))
	}

	if d.channels.Email != nil || d.channels.SMS != nil {
		contact, err := d.contacts.GetContact(ctx, userID)
		if err != nil {
			record("contact", fmt.Errorf("%w: %v", ErrNoContact, err))
		} else {
			d.sendDirect(ctx, contact, msg, record)
		}
	}

	if d.channels.Events != nil {
		event := msg.event
		event.OccurredAt = d.clock.Now()
		record(channelEvent, d.channels.Events.Publish(ctx, event))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrDelivery, errors.Join(errs...))
	}
	return nil
}

func (d *Dispatcher) sendDirect(ctx context.Context, contact *domain.UserContact, msg message, record func(string, error)) {
	if d.channels.Email != nil && ptr.Value(contact.Email) != "" {
		html, err := renderEmail(emailData{
			Title:   msg.title,
			Name:    contact.FullName(),
			Message: msg.text,
			Details: msg.details,
		})
		if err == nil {
			err = d.channels.Email.Send(ctx, mailer.Email{
				To:      *contact.Email,
				Subject: "RainbowPaws: " + msg.title,
				HTML:    html,
			})
		}
		record(channelEmail, err)
	}

	if d.channels.SMS != nil && ptr.Value(contact.Phone) != "" {
		text := msg.text
		if len(msg.details) > 0 {
			text += " " + strings.Join(msg.details, " ")
		}
		record(channelSMS, d.channels.SMS.Send(ctx, sms.Message{
			To:      *contact.Phone,
			Message: "RainbowPaws: " + text,
		}))
	}
}

func statusText(b *domain.Booking) (string, string) {
	subject := fmt.Sprintf("your booking #%d", b.ID)
	if b.PackageName != "" {
		subject = fmt.Sprintf("your booking #%d (%s)", b.ID, b.PackageName)
	}
	if !b.BookingDate.IsZero() {
		subject += " on " + b.BookingDate.Format(domain.DateFormat)
	}

	switch b.Status {
	case domain.StatusConfirmed:
		return "Booking confirmed", "The provider has confirmed " + subject + "."
	case domain.StatusInProgress:
		return "Service in progress", "The provider has started the service for " + subject + "."
	case domain.StatusCompleted:
		return "Service completed", "The provider has completed the service for " + subject + "."
	case domain.StatusCancelled:
		return "Booking cancelled", strings.ToUpper(subject[:1]) + subject[1:] + " has been cancelled."
	default:
		return "Booking updated", fmt.Sprintf("The status of %s is now %s.", subject, b.Status)
	}
}

func refundEvent(eventType string, b *domain.Booking, r *domain.Refund) events.Event {
	return events.Event{
		Type:       eventType,
		BookingID:  b.ID,
		UserID:     b.UserID,
		ProviderID: b.ProviderID,
		Status:     string(r.Status),
		RefundID:   ptr.Ptr(r.ID),
		Amount:     ptr.Ptr(r.Amount),
		Reason:     string(r.Reason),
	}
}
