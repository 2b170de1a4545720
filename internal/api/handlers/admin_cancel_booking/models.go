package admin_cancel_booking

// AdminCancelBookingRequest HTTP request model
type AdminCancelBookingRequest struct {
	Reason      string  `json:"reason" validate:"required,max=500"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ForceRefund bool    `json:"forceRefund"`
}
