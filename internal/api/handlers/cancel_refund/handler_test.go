package cancel_refund

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/refunds"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, refundID int64, actor domain.Actor, notes *string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID, actor, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

var (
	admin      = map[string]string{middleware.HeaderUserID: "1", middleware.HeaderUserRole: "admin"}
	adminActor = domain.Actor{ID: 1, Type: domain.ActorAdmin}
)

func serve(svc *mockService, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth(logger.NewNop()))
	router.HandleFunc("/admin/refunds/{refundId}/cancel", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPost)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(http.MethodPost, path, reader)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle_Cancelled(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, int64(9), adminActor, ptr.Ptr("duplicate request")).
		Return(&domain.Refund{
			ID: 9, BookingID: 42, Amount: 2500,
			Status: domain.RefundCancelled, Notes: ptr.Ptr("duplicate request"),
		}, nil)

	w := serve(svc, "/admin/refunds/9/cancel", `{"notes":"duplicate request"}`, admin)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.RefundResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "cancelled", resp.Status)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_EmptyBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, int64(9), adminActor, (*string)(nil)).
		Return(&domain.Refund{ID: 9, BookingID: 42, Status: domain.RefundCancelled}, nil)

	w := serve(svc, "/admin/refunds/9/cancel", "", admin)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		headers map[string]string
		err     error
		code    int
	}{
		{"anonymous", "/admin/refunds/9/cancel", "", nil, nil, http.StatusUnauthorized},
		{"bad id", "/admin/refunds/abc/cancel", "", admin, nil, http.StatusBadRequest},
		{"malformed body", "/admin/refunds/9/cancel", `{"notes":`, admin, nil, http.StatusBadRequest},
		{"not an admin", "/admin/refunds/9/cancel", "", admin, refunds.ErrAccessDenied, http.StatusForbidden},
		{"not found", "/admin/refunds/9/cancel", "", admin, refunds.ErrRefundNotFound, http.StatusNotFound},
		{"already processing", "/admin/refunds/9/cancel", "", admin, refunds.ErrInvalidRefundStatus, http.StatusConflict},
		{"storage failure", "/admin/refunds/9/cancel", "", admin, errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("Cancel", mock.Anything, int64(9), adminActor, (*string)(nil)).Return(nil, tt.err)
			}

			w := serve(svc, tt.path, tt.body, tt.headers)

			assert.Equal(t, tt.code, w.Code)
			if tt.err == nil {
				svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
