// Package performance derives the daily realized P&L series and summary
// statistics from the trade collection.
package performance

import (
	"fmt"
	"time"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/series"
)

// Window selects how many calendar days of history a report covers.
type Window string

const (
	Window7d  Window = "7d"
	Window30d Window = "30d"
	Window90d Window = "90d"
	Window1y  Window = "1y"
)

// Days returns the fixed day count for the window.
func (w Window) Days() (int, error) {
	switch w {
	case Window7d:
		return 7, nil
	case Window30d:
		return 30, nil
	case Window90d:
		return 90, nil
	case Window1y:
		return 365, nil
	default:
		return 0, fmt.Errorf("unknown window %q", string(w))
	}
}

// Day is one row of the performance series: realized P&L and trade count for
// a calendar day plus the running total up to and including it.
type Day struct {
	Date       string  `json:"date"`
	PnL        float64 `json:"pnl"`
	Cumulative float64 `json:"cumulative"`
	Trades     int     `json:"trades"`
}

// Summary aggregates a performance series for dashboard widgets.
type Summary struct {
	TotalPnL    float64 `json:"total_pnl"`
	TotalTrades int     `json:"total_trades"`
	AvgDailyPnL float64 `json:"avg_daily_pnl"`
	BestDay     float64 `json:"best_day"`
	WorstDay    float64 `json:"worst_day"`
	WinRate     float64 `json:"win_rate"`
	IsPositive  bool    `json:"is_positive"`
}

// Report buckets realized P&L by calendar day over the window ending at now
// and derives the summary. The day axis is dense: exactly window-days rows
// with no gaps, ending on now's UTC date, zero-filled where nothing traded.
// An empty trade set is not an error; it produces an all-zero axis.
func Report(trades []models.Trade, window Window, now time.Time) ([]Day, Summary, error) {
	days, err := window.Days()
	if err != nil {
		return nil, Summary{}, err
	}

	today := series.Day(now)
	start := today.AddDate(0, 0, -(days - 1))

	type bucket struct {
		pnl   float64
		count int
	}
	byDay := make(map[string]bucket)
	for _, t := range trades {
		created := series.Day(t.CreatedAt)
		if created.Before(start) || created.After(today) {
			continue
		}
		key := series.DayKey(created)
		b := byDay[key]
		b.pnl += t.RealizedPnL()
		b.count++
		byDay[key] = b
	}

	out := make([]Day, 0, days)
	cumulative := 0.0
	for i := 0; i < days; i++ {
		key := series.DayKey(start.AddDate(0, 0, i))
		b := byDay[key]
		cumulative += b.pnl
		out = append(out, Day{
			Date:       key,
			PnL:        b.pnl,
			Cumulative: cumulative,
			Trades:     b.count,
		})
	}

	return out, summarize(out), nil
}

// summarize derives the aggregate statistics from a daily series. Best and
// worst day consider only days with trade activity; a window with no active
// days reports a win rate of zero by convention instead of dividing by zero.
func summarize(days []Day) Summary {
	var s Summary
	var activeDays, winningDays int

	for _, d := range days {
		s.TotalPnL += d.PnL
		s.TotalTrades += d.Trades
		if d.Trades == 0 {
			continue
		}
		if activeDays == 0 || d.PnL > s.BestDay {
			s.BestDay = d.PnL
		}
		if activeDays == 0 || d.PnL < s.WorstDay {
			s.WorstDay = d.PnL
		}
		activeDays++
		if d.PnL > 0 {
			winningDays++
		}
	}

	if len(days) > 0 {
		s.AvgDailyPnL = s.TotalPnL / float64(len(days))
	}
	if activeDays > 0 {
		s.WinRate = float64(winningDays) / float64(activeDays) * 100
	}
	s.IsPositive = s.TotalPnL >= 0
	return s
}
