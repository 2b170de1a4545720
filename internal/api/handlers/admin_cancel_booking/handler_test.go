package admin_cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cancelHandler "github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers/cancel_booking"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	cancelBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelBooking.Response), args.Error(1)
}

func serve(uc *mockUseCase, body string, headers map[string]string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth(logger.NewNop()))
	router.HandleFunc("/admin/bookings/{bookingId}/cancel", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/admin/bookings/42/cancel", strings.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

var admin = map[string]string{
	middleware.HeaderUserID:   "1",
	middleware.HeaderUserRole: string(domain.ActorAdmin),
}

func TestHandler_Handle_ForceRefund(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *cancelBooking.Request) bool {
		return req.BookingID == 42 &&
			req.Actor.Type == domain.ActorAdmin &&
			req.OwnerUserID == nil &&
			req.ForceRefund &&
			req.Reason == "provider closed"
	})).Return(&cancelBooking.Response{
		Success:          true,
		BookingCancelled: true,
		RefundInitiated:  true,
		RefundAmount:     5000,
		Booking:          &domain.Booking{ID: 42, Status: domain.StatusCancelled},
	}, nil)

	w := serve(uc, `{"reason":"provider closed","forceRefund":true}`, admin)

	require.Equal(t, http.StatusOK, w.Code)
	var resp cancelHandler.CancelBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.RefundInitiated)
	assert.Equal(t, 5000.0, resp.RefundAmount)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		body    string
		code    int
	}{
		{"anonymous", nil, `{"reason":"x"}`, http.StatusUnauthorized},
		{"customer", map[string]string{middleware.HeaderUserID: "100"}, `{"reason":"x"}`, http.StatusForbidden},
		{"missing reason", admin, `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			w := serve(uc, tt.body, tt.headers)

			assert.Equal(t, tt.code, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Handle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{cancelBooking.ErrBookingNotFound, http.StatusNotFound},
		{cancelBooking.ErrInvalidStatus, http.StatusBadRequest},
		{cancelBooking.ErrCancellationFailed, http.StatusConflict},
		{cancelBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, `{"reason":"duplicate"}`, admin)

			assert.Equal(t, tt.code, w.Code)
			var resp cancelHandler.CancelBookingResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
