package cancel_refund

// CancelRefundRequest HTTP request model; тело запроса необязательно
type CancelRefundRequest struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
