package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	instant := time.Date(2026, 8, 29, 2, 30, 0, 0, loc) // 2026-08-28 21:30 UTC

	day := Day(instant)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, "2026-08-28", DayKey(instant))
}

func TestNormalizeSortsAndDeduplicates(t *testing.T) {
	d := func(day int, hour int) time.Time {
		return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
	}
	points := []PricePoint{
		{Date: d(3, 10), Close: 103},
		{Date: d(1, 9), Close: 101},
		{Date: d(2, 16), Close: 102},
		{Date: d(1, 18), Close: 111}, // same day as the first, last record wins
	}

	s := Normalize(points)
	require.Equal(t, 3, s.Len())

	assert.Equal(t, []float64{111, 102, 103}, s.Closes())
	dates := s.Dates()
	assert.Equal(t, d(1, 0), dates[0])
	assert.Equal(t, d(2, 0), dates[1])
	assert.Equal(t, d(3, 0), dates[2])
}

func TestNormalizeDropsBadCloses(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	points := []PricePoint{
		{Date: base, Close: 100},
		{Date: base.AddDate(0, 0, 1), Close: math.NaN()},
		{Date: base.AddDate(0, 0, 2), Close: math.Inf(1)},
		{Date: base.AddDate(0, 0, 3), Close: -1},
		{Date: base.AddDate(0, 0, 4), Close: 0},
		{Date: base.AddDate(0, 0, 5), Close: 105},
	}

	s := Normalize(points)
	assert.Equal(t, []float64{100, 105}, s.Closes())
}

func TestNormalizeEmpty(t *testing.T) {
	s := Normalize(nil)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Closes())
}

func TestPointsReturnsCopy(t *testing.T) {
	s := Normalize([]PricePoint{{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Close: 100}})

	points := s.Points()
	points[0].Close = 999
	assert.Equal(t, 100.0, s.Closes()[0])
}
