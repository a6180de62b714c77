// Package series normalizes raw price records into the clean, date-ordered
// close-price sequences the indicator engine operates on.
package series

import (
	"math"
	"sort"
	"time"
)

// PricePoint is one (date, close) observation. The date is significant only
// to its UTC calendar day.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a strictly date-ascending sequence of price points with at
// most one point per calendar day. It is read-only once built.
type PriceSeries struct {
	points []PricePoint
}

// Day truncates an instant to its UTC calendar day. All day bucketing in this
// module goes through here so boundary dates are decided exactly once.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats an instant as its canonical UTC date key, e.g. "2026-08-29".
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Normalize builds a PriceSeries from arbitrary price records: dates are
// truncated to UTC days, points are sorted ascending, the last record wins
// when a day occurs more than once, and non-finite or non-positive closes
// are discarded.
func Normalize(points []PricePoint) PriceSeries {
	byDay := make(map[time.Time]PricePoint, len(points))
	for _, p := range points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) || p.Close <= 0 {
			continue
		}
		day := Day(p.Date)
		byDay[day] = PricePoint{Date: day, Close: p.Close}
	}

	out := make([]PricePoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return PriceSeries{points: out}
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int {
	return len(s.points)
}

// Points returns a copy of the normalized points.
func (s PriceSeries) Points() []PricePoint {
	out := make([]PricePoint, len(s.points))
	copy(out, s.points)
	return out
}

// Closes returns the close prices in date order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}

// Dates returns the dates in order, aligned with Closes.
func (s PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.points))
	for i, p := range s.points {
		out[i] = p.Date
	}
	return out
}
