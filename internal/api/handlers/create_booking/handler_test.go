package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	createBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		ID:            1,
		UserID:        req.UserID,
		ProviderID:    req.ProviderID,
		PackageID:     req.PackageID,
		BookingDate:   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:     types.MustTimeString("10:00"),
		EndTime:       types.MustTimeString("11:00"),
		Status:        "pending",
		PaymentStatus: "not_paid",
		PaymentMethod: string(req.PaymentMethod),
		PackageName:   "Basic Cremation",
		Price:         5000,
	}, nil
}

func serve(uc *fakeUseCase, body string, userID string) *httptest.ResponseRecorder {
	h := middleware.Auth(logger.NewNop())(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))

	r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	if userID != "" {
		r.Header.Set(middleware.HeaderUserID, userID)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

const validBody = `{"providerId":3,"slotId":"2025-03-11-1741600000-ab12","packageId":10,"paymentMethod":"gcash","petName":"Mochi"}`

func TestHandler_Handle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	w := serve(uc, validBody, "100")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(100), uc.got.UserID)
	assert.Equal(t, domain.PaymentMethodGCash, uc.got.PaymentMethod)
	assert.Equal(t, "Mochi", *uc.got.PetName)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-11", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 5000.0, resp.Price)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     string
		err        error
		wantStatus int
	}{
		{name: "anonymous", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "unknown payment method", body: `{"providerId":3,"slotId":"s","packageId":10,"paymentMethod":"bitcoin"}`, userID: "100", wantStatus: http.StatusBadRequest},
		{name: "slot taken", body: validBody, userID: "100", err: createBooking.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "inactive package", body: validBody, userID: "100", err: createBooking.ErrPackageInactive, wantStatus: http.StatusBadRequest},
		{name: "slot in the past", body: validBody, userID: "100", err: createBooking.ErrSlotInPast, wantStatus: http.StatusBadRequest},
		{name: "database down", body: validBody, userID: "100", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.body, tt.userID)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
