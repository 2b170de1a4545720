package domain

import "time"

// NotificationType category of an in-app notification
type NotificationType string

const (
	NotificationBookingStatus NotificationType = "booking_status"
	NotificationRefund        NotificationType = "refund"
)

// Notification in-app notification persisted for a user
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	EntityID  *int64
	IsRead    bool
	CreatedAt time.Time
}
