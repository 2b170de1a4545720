package domain

// Business validation constants
const (
	MaxSpecialRequestsLength    = 1000
	MaxCancellationReasonLength = 500
	MaxRefundNotesLength        = 1000
)

// Refund amount tiers for customer cancellations
const (
	FullRefundWindowHours    = 24
	PartialRefundWindowHours = 48

	FullRefundPercent    = 1.0
	PartialRefundPercent = 0.5
	LateRefundPercent    = 0.25
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancellableStatuses статусы, из которых бронирование может быть отменено
var CancellableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// providerTransitions допустимые переходы статусов, выполняемые провайдером
var providerTransitions = map[BookingStatus]BookingStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}
