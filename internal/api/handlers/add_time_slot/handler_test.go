package add_time_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/timeslots"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

type fakeService struct {
	got *timeslots.AddSlotRequest
	err error
}

func (f *fakeService) AddSlot(_ context.Context, req *timeslots.AddSlotRequest) (*timeslots.AddSlotResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	earlier := &domain.TimeSlot{
		ID: "2025-03-11-1-a", ProviderID: req.ProviderID, Date: req.Date,
		StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("09:00"),
	}
	created := &domain.TimeSlot{
		ID: "2025-03-11-2-b", ProviderID: req.ProviderID, Date: req.Date,
		StartTime: types.MustTimeString(req.StartTime), EndTime: types.MustTimeString(req.EndTime),
		AvailableServices: req.AvailableServices,
	}
	return &timeslots.AddSlotResult{Slot: created, Day: []*domain.TimeSlot{earlier, created}}, nil
}

var staff = map[string]string{
	middleware.HeaderUserID:     "55",
	middleware.HeaderUserRole:   "provider",
	middleware.HeaderProviderID: "3",
}

func serve(svc *fakeService, body string, headers map[string]string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth(logger.NewNop()))
	router.HandleFunc("/providers/{providerId}/availability/timeslots", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/providers/3/availability/timeslots", strings.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle_Created(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, `{"date":"2025-03-11","timeSlot":{"start":"10:00","end":"11:00","availableServices":[10]}}`, staff)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(3), svc.got.ProviderID)
	assert.Equal(t, domain.ActorProvider, svc.got.Actor.Type)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), svc.got.Date)
	assert.Equal(t, []int64{10}, svc.got.AvailableServices)

	var resp AddTimeSlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-11", resp.Date)
	assert.Equal(t, "10:00", resp.Slot.Start)
	assert.Equal(t, 60, resp.Slot.DurationMinutes)
	require.Len(t, resp.TimeSlots, 2)
	assert.Equal(t, "08:00", resp.TimeSlots[0].Start)
	assert.Equal(t, []int64{}, resp.TimeSlots[0].AvailableServices)
}

func TestHandler_Handle_Errors(t *testing.T) {
	valid := `{"date":"2025-03-11","timeSlot":{"start":"10:00","end":"11:00"}}`

	tests := []struct {
		name       string
		body       string
		headers    map[string]string
		svcErr     error
		wantStatus int
	}{
		{name: "anonymous", body: valid, wantStatus: http.StatusUnauthorized},
		{name: "bad clock", body: `{"date":"2025-03-11","timeSlot":{"start":"9am","end":"11:00"}}`, headers: staff, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"date":"11.03.2025","timeSlot":{"start":"10:00","end":"11:00"}}`, headers: staff, wantStatus: http.StatusBadRequest},
		{name: "overlap", body: valid, headers: staff, svcErr: fmt.Errorf("%w: 10:00-11:00 conflicts with 09:30-10:30", timeslots.ErrOverlap), wantStatus: http.StatusBadRequest},
		{name: "start after end", body: valid, headers: staff, svcErr: timeslots.ErrInvalidTime, wantStatus: http.StatusBadRequest},
		{name: "past date", body: valid, headers: staff, svcErr: timeslots.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "foreign provider", body: valid, headers: staff, svcErr: timeslots.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "unknown provider", body: valid, headers: staff, svcErr: timeslots.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "database down", body: valid, headers: staff, svcErr: timeslots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.svcErr}, tt.body, tt.headers)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
