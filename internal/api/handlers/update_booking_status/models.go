package update_booking_status

const defaultCancelReason = "cancelled by provider"

// UpdateBookingStatusRequest HTTP request model
// reason и notes учитываются только при status=cancelled
type UpdateBookingStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateBookingStatusRequest) cancelReason() string {
	if r.Reason == nil || *r.Reason == "" {
		return defaultCancelReason
	}
	return *r.Reason
}
