package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/events"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/mailer"
	"github.com/m04kA/RainbowPaws-BookingService/internal/integrations/sms"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/clock"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

type recordingInApp struct {
	saved []*domain.Notification
	err   error
}

func (r *recordingInApp) Create(_ context.Context, n *domain.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, n)
	return nil
}

type recordingEmail struct {
	sent []mailer.Email
	err  error
}

func (r *recordingEmail) Send(_ context.Context, email mailer.Email) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, email)
	return nil
}

type recordingSMS struct {
	sent []sms.Message
}

func (r *recordingSMS) Send(_ context.Context, msg sms.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

type recordingEvents struct {
	published []events.Event
}

func (r *recordingEvents) Publish(_ context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return nil
}

type staticContacts struct {
	contact *domain.UserContact
	err     error
}

func (s staticContacts) GetContact(context.Context, int64) (*domain.UserContact, error) {
	return s.contact, s.err
}

type countingMetrics struct {
	success map[string]int
	failure map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{success: map[string]int{}, failure: map[string]int{}}
}

func (m *countingMetrics) RecordNotification(channel string, ok bool) {
	if ok {
		m.success[channel]++
		return
	}
	m.failure[channel]++
}

var occurredAt = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          42,
		UserID:      100,
		ProviderID:  3,
		Status:      domain.StatusCancelled,
		PackageName: "Basic Cremation",
		BookingDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),

		CancellationReason: ptr.Ptr("change of plans"),
	}
}

func testContact() *domain.UserContact {
	return &domain.UserContact{
		ID:        100,
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     ptr.Ptr("maria@example.com"),
		Phone:     ptr.Ptr("+639171234567"),
	}
}

func TestDispatcher_RefundInitiated_AllChannels(t *testing.T) {
	inApp := &recordingInApp{}
	email := &recordingEmail{}
	text := &recordingSMS{}
	bus := &recordingEvents{}
	metrics := newCountingMetrics()

	d := NewDispatcher(
		Channels{InApp: inApp, Email: email, SMS: text, Events: bus},
		staticContacts{contact: testContact()},
		"PHP",
		metrics,
		clock.Fixed{At: occurredAt},
		logger.NewNop(),
	)

	refund := &domain.Refund{
		ID:         7,
		BookingID:  42,
		Amount:     2500,
		Status:     domain.RefundPending,
		RefundType: domain.RefundTypeAutomatic,
		Reason:     domain.RefundReasonUserRequested,
	}

	err := d.RefundInitiated(context.Background(), testBooking(), refund)
	require.NoError(t, err)

	require.Len(t, inApp.saved, 1)
	assert.Equal(t, domain.NotificationRefund, inApp.saved[0].Type)
	assert.Equal(t, int64(100), inApp.saved[0].UserID)
	assert.Equal(t, int64(42), *inApp.saved[0].EntityID)
	assert.Contains(t, inApp.saved[0].Message, "2500.00 PHP")

	require.Len(t, email.sent, 1)
	assert.Equal(t, "maria@example.com", email.sent[0].To)
	assert.Contains(t, email.sent[0].HTML, "Maria Santos")
	assert.Contains(t, email.sent[0].HTML, "Refund reference: #7")

	require.Len(t, text.sent, 1)
	assert.Equal(t, "+639171234567", text.sent[0].To)

	require.Len(t, bus.published, 1)
	event := bus.published[0]
	assert.Equal(t, events.TypeRefundInitiated, event.Type)
	assert.Equal(t, int64(7), *event.RefundID)
	assert.Equal(t, 2500.0, *event.Amount)
	assert.Equal(t, occurredAt, event.OccurredAt)

	assert.Equal(t, 1, metrics.success[channelInApp])
	assert.Equal(t, 1, metrics.success[channelEmail])
	assert.Equal(t, 1, metrics.success[channelSMS])
	assert.Equal(t, 1, metrics.success[channelEvent])
}

func TestDispatcher_BookingStatusChanged(t *testing.T) {
	t.Run("cancellation publishes cancelled event with reason", func(t *testing.T) {
		bus := &recordingEvents{}
		inApp := &recordingInApp{}
		d := NewDispatcher(Channels{InApp: inApp, Events: bus}, nil, "PHP",
			newCountingMetrics(), clock.Fixed{At: occurredAt}, logger.NewNop())

		require.NoError(t, d.BookingStatusChanged(context.Background(), testBooking()))

		require.Len(t, bus.published, 1)
		assert.Equal(t, events.TypeBookingCancelled, bus.published[0].Type)
		assert.Equal(t, "change of plans", bus.published[0].Reason)
		require.Len(t, inApp.saved, 1)
		assert.Equal(t, "Booking cancelled", inApp.saved[0].Title)
		assert.Contains(t, inApp.saved[0].Message, "Basic Cremation")
	})

	t.Run("confirmation", func(t *testing.T) {
		bus := &recordingEvents{}
		d := NewDispatcher(Channels{Events: bus}, nil, "PHP",
			newCountingMetrics(), clock.Fixed{At: occurredAt}, logger.NewNop())

		b := testBooking()
		b.Status = domain.StatusConfirmed
		require.NoError(t, d.BookingStatusChanged(context.Background(), b))

		require.Len(t, bus.published, 1)
		assert.Equal(t, events.TypeBookingStatusChanged, bus.published[0].Type)
		assert.Equal(t, "confirmed", bus.published[0].Status)
	})
}

func TestDispatcher_ChannelFailuresAreIndependent(t *testing.T) {
	inApp := &recordingInApp{err: errors.New("db down")}
	email := &recordingEmail{err: errors.New("smtp timeout")}
	bus := &recordingEvents{}
	metrics := newCountingMetrics()

	d := NewDispatcher(
		Channels{InApp: inApp, Email: email, Events: bus},
		staticContacts{contact: testContact()},
		"PHP",
		metrics,
		clock.Fixed{At: occurredAt},
		logger.NewNop(),
	)

	err := d.RefundProcessed(context.Background(), testBooking(), &domain.Refund{ID: 7, Amount: 100, Status: domain.RefundProcessed})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "db down")
	assert.Contains(t, err.Error(), "smtp timeout")
	assert.Len(t, bus.published, 1)
	assert.Equal(t, 1, metrics.failure[channelInApp])
	assert.Equal(t, 1, metrics.failure[channelEmail])
	assert.Equal(t, 1, metrics.success[channelEvent])
}

func TestDispatcher_MissingContactSkipsDirectChannels(t *testing.T) {
	email := &recordingEmail{}
	text := &recordingSMS{}

	d := NewDispatcher(
		Channels{Email: email, SMS: text},
		staticContacts{err: errors.New("user not found")},
		"PHP",
		newCountingMetrics(),
		clock.Fixed{At: occurredAt},
		logger.NewNop(),
	)

	err := d.RefundProcessed(context.Background(), testBooking(), &domain.Refund{ID: 7, Amount: 100, Status: domain.RefundFailed})

	assert.ErrorIs(t, err, ErrDelivery)
	assert.Empty(t, email.sent)
	assert.Empty(t, text.sent)
}

func TestDispatcher_ContactWithoutPhoneSkipsSMS(t *testing.T) {
	text := &recordingSMS{}
	contact := testContact()
	contact.Phone = nil

	d := NewDispatcher(Channels{SMS: text}, staticContacts{contact: contact}, "PHP",
		newCountingMetrics(), clock.Fixed{At: occurredAt}, logger.NewNop())

	require.NoError(t, d.BookingStatusChanged(context.Background(), testBooking()))
	assert.Empty(t, text.sent)
}

func TestRenderEmail_EscapesContent(t *testing.T) {
	html, err := renderEmail(emailData{Title: "Hi", Name: "<script>", Message: "ok"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
