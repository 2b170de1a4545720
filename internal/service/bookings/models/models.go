package models

import (
	"errors"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// UpdateStatusRequest запрос провайдера на смену статуса бронирования
type UpdateStatusRequest struct {
	Actor      domain.Actor
	ProviderID int64
	Status     string
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor  domain.Actor
	UserID int64
	Status *string
}

// GetProviderBookingsRequest запрос на получение бронирований провайдера
type GetProviderBookingsRequest struct {
	Actor      domain.Actor
	ProviderID int64
	StartDate  *time.Time // Начало периода (опционально)
	EndDate    *time.Time // Конец периода (опционально)
	Status     *string    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID: r.ProviderID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	ProviderID  int64  `json:"providerId"`
	PackageID   int64  `json:"packageId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`

	PaymentStatus *string `json:"paymentStatus,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Price         float64 `json:"price"`

	// Денормализованные данные
	PackageName     string  `json:"packageName"`
	PetName         *string `json:"petName,omitempty"`
	PetType         *string `json:"petType,omitempty"`
	PetBreed        *string `json:"petBreed,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledByType    *string `json:"cancelledByType,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RefundResponse ответ с данными возврата
type RefundResponse struct {
	ID              int64   `json:"id"`
	BookingID       int64   `json:"bookingId"`
	Amount          float64 `json:"amount"`
	Reason          string  `json:"reason"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	RefundType      string  `json:"refundType"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	InitiatedByType string  `json:"initiatedByType"`
	Notes           *string `json:"notes,omitempty"`
	GatewayRefundID *string `json:"gatewayRefundId,omitempty"`
	ProcessedAt     *string `json:"processedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// RefundListResponse ответ со списком возвратов
type RefundListResponse struct {
	Refunds []RefundResponse `json:"refunds"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ProviderID:         b.ProviderID,
		PackageID:          b.PackageID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		PaymentStatus:      optionalString(string(b.PaymentStatus)),
		PaymentMethod:      optionalString(string(b.PaymentMethod)),
		Price:              b.Price,
		PackageName:        b.PackageName,
		PetName:            b.PetName,
		PetType:            b.PetType,
		PetBreed:           b.PetBreed,
		SpecialRequests:    b.SpecialRequests,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledByType != nil {
		resp.CancelledByType = optionalString(string(*b.CancelledByType))
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainRefund конвертирует domain модель возврата в DTO
func FromDomainRefund(r *domain.Refund) *RefundResponse {
	if r == nil {
		return nil
	}

	resp := &RefundResponse{
		ID:              r.ID,
		BookingID:       r.BookingID,
		Amount:          r.Amount,
		Reason:          string(r.Reason),
		Description:     r.Description,
		Status:          string(r.Status),
		RefundType:      string(r.RefundType),
		PaymentMethod:   string(r.PaymentMethod),
		InitiatedByType: string(r.InitiatedByType),
		Notes:           r.Notes,
		GatewayRefundID: r.GatewayRefundID,
		CreatedAt:       r.CreatedAt,
	}

	if r.ProcessedAt != nil {
		processedStr := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedStr
	}

	return resp
}

// FromDomainRefundList конвертирует список возвратов в DTO
func FromDomainRefundList(refunds []*domain.Refund) *RefundListResponse {
	resp := &RefundListResponse{
		Refunds: make([]RefundResponse, 0, len(refunds)),
	}

	for _, refund := range refunds {
		if refundResp := FromDomainRefund(refund); refundResp != nil {
			resp.Refunds = append(resp.Refunds, *refundResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
