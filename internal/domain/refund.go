package domain

import "time"

// RefundStatus represents the lifecycle state of a refund
type RefundStatus string

const (
	RefundPending    RefundStatus = "pending"
	RefundProcessing RefundStatus = "processing"
	RefundProcessed  RefundStatus = "processed"
	RefundFailed     RefundStatus = "failed"
	RefundCancelled  RefundStatus = "cancelled"
)

// RefundReason categorizes why a refund was created
type RefundReason string

const (
	RefundReasonUserRequested     RefundReason = "user_requested"
	RefundReasonProviderCancelled RefundReason = "provider_cancelled"
	RefundReasonAdminCancelled    RefundReason = "admin_cancelled"
	RefundReasonSystemCancelled   RefundReason = "system_cancelled"
)

// RefundReasonFor maps the cancelling actor to the refund reason category
func RefundReasonFor(actor ActorType) RefundReason {
	switch actor {
	case ActorProvider:
		return RefundReasonProviderCancelled
	case ActorAdmin:
		return RefundReasonAdminCancelled
	case ActorSystem:
		return RefundReasonSystemCancelled
	default:
		return RefundReasonUserRequested
	}
}

// RefundType distinguishes gateway refunds from refunds handled by staff
type RefundType string

const (
	RefundTypeAutomatic RefundType = "automatic"
	RefundTypeManual    RefundType = "manual"
)

// RefundTypeFor returns the refund type for a payment method
func RefundTypeFor(method PaymentMethod) RefundType {
	if method.IsOnline() {
		return RefundTypeAutomatic
	}
	return RefundTypeManual
}

// Refund represents a refund attempt for a booking.
// A booking may have several refunds; they are never deduplicated.
type Refund struct {
	ID              int64
	BookingID       int64
	UserID          int64
	Amount          float64
	Reason          RefundReason
	Description     string // "booking cancellation: <reason>"
	Status          RefundStatus
	RefundType      RefundType
	PaymentMethod   PaymentMethod
	InitiatedBy     int64
	InitiatedByType ActorType
	Notes           *string
	GatewayRefundID *string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
