package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

var manila = time.FixedZone("PHT", 8*60*60)

func TestParsePeriod(t *testing.T) {
	now := time.Date(2025, 3, 10, 21, 15, 0, 0, manila)

	t.Run("defaults to the next thirty days", func(t *testing.T) {
		from, to, err := ParsePeriod("", "", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, manila), from)
		assert.Equal(t, time.Date(2025, 4, 9, 0, 0, 0, 0, manila), to)
	})

	t.Run("explicit period", func(t *testing.T) {
		from, to, err := ParsePeriod("2025-03-12", "2025-03-14", now)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-12", from.Format(domain.DateFormat))
		assert.Equal(t, "2025-03-14", to.Format(domain.DateFormat))
		assert.Equal(t, manila, from.Location())
	})

	t.Run("invalid date", func(t *testing.T) {
		_, _, err := ParsePeriod("12/03/2025", "", now)
		assert.Error(t, err)
	})
}

func TestFromDomainAvailability(t *testing.T) {
	day := time.Date(2025, 3, 11, 0, 0, 0, 0, manila)
	availability := domain.Availability{
		"2025-03-11": {
			{ID: "a", Date: day, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00")},
			{ID: "b", Date: day, StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:30"), AvailableServices: []int64{10}},
		},
	}

	resp := FromDomainAvailability(3, day, day.AddDate(0, 0, 1), availability)

	assert.Equal(t, "2025-03-11", resp.From)
	assert.Equal(t, "2025-03-12", resp.To)
	require.Len(t, resp.Availability["2025-03-11"], 2)
	assert.Equal(t, "10:00", resp.Availability["2025-03-11"][1].Start)
	assert.Equal(t, 90, resp.Availability["2025-03-11"][1].DurationMinutes)
	assert.Equal(t, []int64{10}, resp.Availability["2025-03-11"][1].AvailableServices)
}
