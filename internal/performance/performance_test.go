package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trade-journal-go/internal/models"
)

var testNow = time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

func closedTrade(id string, direction string, entry, exit float64, qty int, createdAt time.Time) models.Trade {
	return models.Trade{
		Model:      gorm.Model{CreatedAt: createdAt},
		TradeID:    id,
		Symbol:     "AAPL",
		Direction:  direction,
		EntryPrice: entry,
		ExitPrice:  &exit,
		Quantity:   qty,
		EntryDate:  createdAt,
		ExitDate:   &createdAt,
		Status:     models.StatusClosed,
	}
}

func TestWindowDays(t *testing.T) {
	testCases := []struct {
		window Window
		days   int
	}{
		{Window7d, 7},
		{Window30d, 30},
		{Window90d, 90},
		{Window1y, 365},
	}
	for _, tc := range testCases {
		days, err := tc.window.Days()
		require.NoError(t, err)
		assert.Equal(t, tc.days, days)
	}

	_, err := Window("14d").Days()
	assert.Error(t, err)
}

func TestReportEmptyTradeSet(t *testing.T) {
	daily, summary, err := Report(nil, Window30d, testNow)
	require.NoError(t, err)

	require.Len(t, daily, 30)
	for _, d := range daily {
		assert.Zero(t, d.PnL)
		assert.Zero(t, d.Cumulative)
		assert.Zero(t, d.Trades)
	}
	assert.Zero(t, summary.TotalPnL)
	assert.Zero(t, summary.TotalTrades)
	assert.Zero(t, summary.WinRate)
	assert.Zero(t, summary.BestDay)
	assert.Zero(t, summary.WorstDay)
	assert.True(t, summary.IsPositive)
}

func TestReportSingleLongTrade(t *testing.T) {
	// CLOSED LONG, entry 100, exit 110, qty 10, created today: pnl 100.
	trades := []models.Trade{
		closedTrade("t1", models.DirectionLong, 100, 110, 10, testNow),
	}

	daily, summary, err := Report(trades, Window7d, testNow)
	require.NoError(t, err)
	require.Len(t, daily, 7)

	today := daily[len(daily)-1]
	assert.Equal(t, "2026-08-29", today.Date)
	assert.Equal(t, 100.0, today.PnL)
	assert.Equal(t, 100.0, today.Cumulative)
	assert.Equal(t, 1, today.Trades)

	assert.Equal(t, 100.0, summary.TotalPnL)
	assert.Equal(t, 1, summary.TotalTrades)
	assert.Equal(t, 100.0, summary.WinRate)
	assert.Equal(t, 100.0, summary.BestDay)
	assert.Equal(t, 100.0, summary.WorstDay)
	assert.InDelta(t, 100.0/7, summary.AvgDailyPnL, 1e-9)
	assert.True(t, summary.IsPositive)
}

func TestReportShortTradeProfit(t *testing.T) {
	// CLOSED SHORT, entry 50, exit 40, qty 5: price fell, profit 50.
	trades := []models.Trade{
		closedTrade("t1", models.DirectionShort, 50, 40, 5, testNow),
	}

	_, summary, err := Report(trades, Window7d, testNow)
	require.NoError(t, err)
	assert.Equal(t, 50.0, summary.TotalPnL)
}

func TestReportCumulativeInvariant(t *testing.T) {
	trades := []models.Trade{
		closedTrade("t1", models.DirectionLong, 100, 110, 10, testNow.AddDate(0, 0, -5)),
		closedTrade("t2", models.DirectionLong, 200, 190, 2, testNow.AddDate(0, 0, -3)),
		closedTrade("t3", models.DirectionShort, 50, 40, 5, testNow.AddDate(0, 0, -3)),
		closedTrade("t4", models.DirectionLong, 10, 12, 100, testNow),
	}

	daily, summary, err := Report(trades, Window30d, testNow)
	require.NoError(t, err)

	var total float64
	for i, d := range daily {
		total += d.PnL
		if i == 0 {
			assert.Equal(t, d.PnL, d.Cumulative)
		} else {
			assert.InDelta(t, daily[i-1].Cumulative+d.PnL, d.Cumulative, 1e-9)
		}
	}
	assert.InDelta(t, total, summary.TotalPnL, 1e-9)
	assert.InDelta(t, summary.TotalPnL, daily[len(daily)-1].Cumulative, 1e-9)
}

func TestReportOpenAndCancelledContributeZeroPnL(t *testing.T) {
	open := models.Trade{
		Model:      gorm.Model{CreatedAt: testNow},
		TradeID:    "t1",
		Direction:  models.DirectionLong,
		EntryPrice: 100,
		Quantity:   10,
		Status:     models.StatusOpen,
	}
	cancelled := open
	cancelled.TradeID = "t2"
	cancelled.Status = models.StatusCancelled

	daily, summary, err := Report([]models.Trade{open, cancelled}, Window7d, testNow)
	require.NoError(t, err)

	// They still count as activity on their day, just with zero realized P&L.
	assert.Equal(t, 2, daily[len(daily)-1].Trades)
	assert.Zero(t, summary.TotalPnL)
	assert.Equal(t, 2, summary.TotalTrades)
	assert.Zero(t, summary.WinRate)
}

func TestReportExcludesTradesOutsideWindow(t *testing.T) {
	trades := []models.Trade{
		closedTrade("old", models.DirectionLong, 100, 110, 10, testNow.AddDate(0, 0, -7)),
		closedTrade("new", models.DirectionLong, 100, 105, 10, testNow),
	}

	_, summary, err := Report(trades, Window7d, testNow)
	require.NoError(t, err)

	// The 7d axis ends today and starts 6 days back; the older trade is out.
	assert.Equal(t, 1, summary.TotalTrades)
	assert.Equal(t, 50.0, summary.TotalPnL)
}

func TestReportWinRateMixedDays(t *testing.T) {
	trades := []models.Trade{
		closedTrade("w", models.DirectionLong, 100, 110, 1, testNow.AddDate(0, 0, -2)),
		closedTrade("l", models.DirectionLong, 100, 90, 1, testNow.AddDate(0, 0, -1)),
	}

	_, summary, err := Report(trades, Window7d, testNow)
	require.NoError(t, err)

	assert.Equal(t, 50.0, summary.WinRate)
	assert.Equal(t, 10.0, summary.BestDay)
	assert.Equal(t, -10.0, summary.WorstDay)
	assert.False(t, summary.IsPositive)
}
