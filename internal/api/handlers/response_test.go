package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotBody struct {
	Date  string `json:"date" validate:"required,date"`
	Start string `json:"start" validate:"required,clock"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantFields []string
	}{
		{name: "valid", body: `{"date":"2025-03-11","start":"10:00"}`, wantOK: true},
		{name: "bad date and clock", body: `{"date":"11/03/2025","start":"25:00"}`, wantFields: []string{"date", "start"}},
		{name: "unknown field", body: `{"date":"2025-03-11","start":"10:00","extra":1}`},
		{name: "two objects", body: `{"date":"2025-03-11","start":"10:00"}{}`},
		{name: "not json", body: `date=2025-03-11`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var body slotBody
			ok := DecodeAndValidate(w, r, &body, "bad body")

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, "bad body", resp.Message)
			for _, field := range tt.wantFields {
				assert.Contains(t, resp.Details, field)
			}
		})
	}
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondInternalError(w)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":500,"message":"`+msgInternalError+`"}`, w.Body.String())
}
