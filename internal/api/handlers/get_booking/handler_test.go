package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(svc *mockService, path string, headers map[string]string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth(logger.NewNop()))
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	r := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

var owner = map[string]string{middleware.HeaderUserID: "100"}

func TestHandler_Handle_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, int64(42), domain.Actor{ID: 100, Type: domain.ActorCustomer}).
		Return(&models.BookingResponse{ID: 42, UserID: 100, Status: "confirmed"}, nil)

	w := serve(svc, "/bookings/42", owner)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		headers map[string]string
		err     error
		code    int
	}{
		{"anonymous", "/bookings/42", nil, nil, http.StatusUnauthorized},
		{"bad id", "/bookings/abc", owner, nil, http.StatusBadRequest},
		{"not found", "/bookings/42", owner, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"someone else's booking", "/bookings/42", owner, bookings.ErrAccessDenied, http.StatusNotFound},
		{"storage failure", "/bookings/42", owner, errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("GetByID", mock.Anything, int64(42), mock.Anything).Return(nil, tt.err)
			}

			w := serve(svc, tt.path, tt.headers)

			assert.Equal(t, tt.code, w.Code)
			if tt.err == nil {
				svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
