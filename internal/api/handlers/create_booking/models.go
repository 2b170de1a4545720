package create_booking

import (
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	createBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID      int64   `json:"providerId" validate:"required,gt=0"`
	SlotID          string  `json:"slotId" validate:"required"`
	PackageID       int64   `json:"packageId" validate:"required,gt=0"`
	PaymentMethod   string  `json:"paymentMethod" validate:"required,oneof=cash gcash qr card paymaya"`
	PetName         *string `json:"petName,omitempty" validate:"omitempty,max=100"`
	PetType         *string `json:"petType,omitempty" validate:"omitempty,max=50"`
	PetBreed        *string `json:"petBreed,omitempty" validate:"omitempty,max=100"`
	SpecialRequests *string `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ProviderID      int64     `json:"providerId"`
	PackageID       int64     `json:"packageId"`
	PackageName     string    `json:"packageName"`
	BookingDate     string    `json:"bookingDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	PaymentMethod   string    `json:"paymentMethod"`
	Price           float64   `json:"price"`
	PetName         *string   `json:"petName,omitempty"`
	PetType         *string   `json:"petType,omitempty"`
	PetBreed        *string   `json:"petBreed,omitempty"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:          userID,
		ProviderID:      r.ProviderID,
		SlotID:          r.SlotID,
		PackageID:       r.PackageID,
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		PetName:         r.PetName,
		PetType:         r.PetType,
		PetBreed:        r.PetBreed,
		SpecialRequests: r.SpecialRequests,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ProviderID:      resp.ProviderID,
		PackageID:       resp.PackageID,
		PackageName:     resp.PackageName,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		PaymentMethod:   resp.PaymentMethod,
		Price:           resp.Price,
		PetName:         resp.PetName,
		PetType:         resp.PetType,
		PetBreed:        resp.PetBreed,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
