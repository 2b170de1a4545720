package domain

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid returns true if the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of a booking.
// Empty value means the payment status is absent.
type PaymentStatus string

const (
	PaymentNotPaid  PaymentStatus = "not_paid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentPending  PaymentStatus = "pending"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod represents how the booking was (or will be) paid
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodGCash   PaymentMethod = "gcash"
	PaymentMethodQR      PaymentMethod = "qr"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodPayMaya PaymentMethod = "paymaya"
)

// IsOnline returns true for methods refunded through the payment gateway
func (m PaymentMethod) IsOnline() bool {
	switch m {
	case PaymentMethodGCash, PaymentMethodQR, PaymentMethodCard, PaymentMethodPayMaya:
		return true
	}
	return false
}

// ActorType identifies who performs an action on a booking
type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorAdmin    ActorType = "admin"
	ActorSystem   ActorType = "system"
	ActorProvider ActorType = "provider"
)

// IsValid returns true if the actor type is known
func (a ActorType) IsValid() bool {
	switch a {
	case ActorCustomer, ActorAdmin, ActorSystem, ActorProvider:
		return true
	}
	return false
}

// Booking represents a cremation package booking
type Booking struct {
	ID          int64
	UserID      int64
	ProviderID  int64
	PackageID   int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus

	PaymentStatus    PaymentStatus
	PaymentMethod    PaymentMethod
	PaymentReference *string // ID платежа в платежном шлюзе
	Price            float64

	// Denormalized data for history
	PackageName     string
	PetName         *string
	PetType         *string
	PetBreed        *string
	SpecialRequests *string

	CancellationReason *string
	CancelledBy        *int64
	CancelledByType    *ActorType
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	for _, s := range CancellableStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanTransitionTo returns true if a provider may move the booking to the given status.
// Cancellation is handled separately.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	allowed, ok := providerTransitions[b.Status]
	return ok && allowed == next
}

// Cancellation describes who cancelled a booking and why
type Cancellation struct {
	Reason          string
	CancelledBy     int64
	CancelledByType ActorType
	Notes           *string
	IPAddress       *string
	CancelledAt     time.Time
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID int64          // Обязательный параметр
	StartDate  *time.Time     // Начало периода (опционально)
	EndDate    *time.Time     // Конец периода (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
}
