package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKey_UsesUTC(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*3600)
	local := time.Date(2025, 1, 31, 22, 30, 0, 0, santiago)

	assert.Equal(t, "2025-02", MonthKey(local))
	assert.Equal(t, "2025-01", MonthKey(time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)))
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2021-01-03", "2020-W53"}, // Sunday belongs to the previous ISO year
		{"2021-01-04", "2021-W01"},
		{"2024-12-30", "2025-W01"},
		{"2025-06-15", "2025-W24"},
		{"2026-01-01", "2026-W01"},
		{"2027-01-01", "2026-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ISOWeekKey(d))
		})
	}
}

func TestISOWeek_AgreesWithStandardLibrary(t *testing.T) {
	d := time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3*366; i++ {
		year, week := ISOWeek(d)
		wantYear, wantWeek := d.ISOWeek()
		require.Equal(t, wantYear, year, d.Format("2006-01-02"))
		require.Equal(t, wantWeek, week, d.Format("2006-01-02"))
		d = d.AddDate(0, 0, 1)
	}
}

func TestTrailingMonths(t *testing.T) {
	now := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)

	keys := TrailingMonths(now, 12)

	require.Len(t, keys, 12)
	assert.Equal(t, "2024-04", keys[0])
	assert.Equal(t, "2025-02", keys[10])
	assert.Equal(t, "2025-03", keys[11])
	assert.Empty(t, TrailingMonths(now, 0))
}

func TestTrailingWeeks(t *testing.T) {
	now := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	keys := TrailingWeeks(now, 20)

	require.Len(t, keys, 20)
	assert.Equal(t, "2025-W02", keys[19])
	assert.Equal(t, "2025-W01", keys[18])
	assert.Equal(t, "2024-W52", keys[17])
	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

type bucket struct {
	Count   int
	Revenue float64
}

func TestFillGaps(t *testing.T) {
	keys := TrailingMonths(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), 12)

	t.Run("empty source", func(t *testing.T) {
		points := FillGaps(map[string]bucket{}, keys)

		require.Len(t, points, 12)
		for i, p := range points {
			assert.Equal(t, keys[i], p.Key)
			assert.Equal(t, bucket{}, p.Value)
		}
	})

	t.Run("partial source", func(t *testing.T) {
		points := FillGaps(map[string]bucket{
			"2025-03": {Count: 2, Revenue: 300},
			"2023-01": {Count: 9, Revenue: 900},
		}, keys)

		require.Len(t, points, 12)
		assert.Equal(t, "2025-03", points[2].Key)
		assert.Equal(t, bucket{Count: 2, Revenue: 300}, points[2].Value)
		assert.Equal(t, bucket{}, points[3].Value)
	})

	t.Run("nil source", func(t *testing.T) {
		assert.Len(t, FillGaps[bucket](nil, keys), 12)
	})
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.5, DaysBetween(from, from.Add(36*time.Hour)))
}
