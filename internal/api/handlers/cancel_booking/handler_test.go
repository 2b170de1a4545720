package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	cancelBooking "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
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
	router.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/bookings/42/cancel", strings.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

var customer = map[string]string{middleware.HeaderUserID: "100"}

func TestHandler_Handle_Success(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *cancelBooking.Request) bool {
		return req.BookingID == 42 &&
			req.Actor.Type == domain.ActorCustomer &&
			req.OwnerUserID != nil && *req.OwnerUserID == 100 &&
			req.Reason == "change of plans" &&
			!req.ForceRefund
	})).Return(&cancelBooking.Response{
		Success:          true,
		BookingCancelled: true,
		RefundInitiated:  true,
		RefundID:         ptr.Ptr(int64(7)),
		RefundType:       ptr.Ptr(domain.RefundTypeAutomatic),
		RefundAmount:     5000,
		Message:          "Booking cancelled successfully.",
		Booking:          &domain.Booking{ID: 42, UserID: 100, Status: domain.StatusCancelled},
		Refund:           &domain.Refund{ID: 7, BookingID: 42, Amount: 5000, Status: domain.RefundPending},
	}, nil)

	w := serve(uc, `{"reason":"change of plans"}`, customer)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.RefundInitiated)
	assert.Equal(t, int64(7), *resp.RefundID)
	assert.Equal(t, "automatic", *resp.RefundType)
	assert.Equal(t, "cancelled", resp.Booking.Status)
	assert.Equal(t, "pending", resp.Refund.Status)
	assert.Nil(t, resp.Error)
	uc.AssertExpectations(t)
}

func TestHandler_Handle_RefundFailureKeepsSuccess(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&cancelBooking.Response{
		Success:          true,
		BookingCancelled: true,
		Message:          "Booking cancelled successfully.",
		Error:            errors.New("cancel_booking: failed to initiate refund: connection reset"),
		Booking:          &domain.Booking{ID: 42, Status: domain.StatusCancelled},
	}, nil)

	w := serve(uc, `{"reason":"change of plans"}`, customer)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, *resp.Error, "connection reset")
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "anonymous", body: `{"reason":"x"}`, wantStatus: http.StatusUnauthorized},
		{name: "missing reason", headers: customer, body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "not owned", headers: customer, body: `{"reason":"x"}`, ucErr: cancelBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "already cancelled", headers: customer, body: `{"reason":"x"}`, ucErr: cancelBooking.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "lost race", headers: customer, body: `{"reason":"x"}`, ucErr: cancelBooking.ErrCancellationFailed, wantStatus: http.StatusConflict},
		{name: "database down", headers: customer, body: `{"reason":"x"}`, ucErr: cancelBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)

			w := serve(uc, tt.body, tt.headers)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
				return
			}

			var resp CancelBookingResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
			assert.NotContains(t, resp.Message, "cancel_booking:")
		})
	}
}

func TestHandler_Handle_CancelsAsCustomerRegardlessOfRole(t *testing.T) {
	for _, role := range []domain.ActorType{domain.ActorProvider, domain.ActorAdmin} {
		t.Run(string(role), func(t *testing.T) {
			headers := map[string]string{
				middleware.HeaderUserID:     "100",
				middleware.HeaderUserRole:   string(role),
				middleware.HeaderProviderID: "5",
			}

			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *cancelBooking.Request) bool {
				return req.Actor.ID == 100 &&
					req.Actor.Type == domain.ActorCustomer &&
					req.Actor.ProviderID == nil &&
					req.OwnerUserID != nil && *req.OwnerUserID == 100
			})).Return(&cancelBooking.Response{
				Success:          true,
				BookingCancelled: true,
				Booking:          &domain.Booking{ID: 42, UserID: 100, Status: domain.StatusCancelled},
			}, nil)

			w := serve(uc, `{"reason":"change of plans"}`, headers)

			assert.Equal(t, http.StatusOK, w.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestHandler_Handle_InvalidStatusNamesCurrentStatus(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, &cancelBooking.StatusError{
		Current: domain.StatusCompleted,
		Allowed: domain.CancellableStatuses,
	})

	w := serve(uc, `{"reason":"change of plans"}`, customer)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "completed")
	assert.Contains(t, resp.Message, "pending")
}
