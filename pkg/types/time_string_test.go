package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid evening", input: "23:59", want: "23:59"},
		{name: "postgres time with seconds", input: "10:30:00", want: "10:30"},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	nine := MustTimeString("09:00")
	ten := MustTimeString("10:00")

	assert.True(t, nine.IsBefore(ten))
	assert.False(t, ten.IsBefore(nine))
	assert.True(t, ten.IsAfter(nine))
	assert.False(t, nine.IsBefore(nine))
	assert.True(t, nine.Equal(MustTimeString("09:00")))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := MustTimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "10:15", got.String())

	_, err = MustTimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_JSON(t *testing.T) {
	var payload struct {
		Start TimeString `json:"start"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:30"}`), &payload))
	assert.Equal(t, "08:30", payload.Start.String())

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"08:30"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"8:30am"}`), &payload))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("14:05:00")))
	assert.Equal(t, "14:05", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, "07:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	got := MustTimeString("16:20").On(date)
	assert.Equal(t, time.Date(2026, 3, 14, 16, 20, 0, 0, time.UTC), got)
}
