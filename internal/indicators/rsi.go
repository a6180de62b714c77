package indicators

import (
	"fmt"
	"math"
	"time"
)

// DefaultRSIPeriod is the conventional RSI lookback.
const DefaultRSIPeriod = 14

// RSI calculates the relative strength index over a close-price series.
// For each window of period consecutive price changes, gains and losses are
// averaged separately; RSI = 100 - 100/(1+RS) with RS = avgGain/avgLoss.
// A window with zero average loss saturates to 100 by definition rather than
// producing a non-finite value. Sample i carries the date of input index
// i + period, the last price of its window. Output length is
// len(prices) - period.
func RSI(prices []float64, dates []time.Time, period int) ([]RSISample, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	// The first change needs two prices, so the seed window is period+1 long.
	if err := checkInput(prices, dates, period+1); err != nil {
		return nil, err
	}

	out := make([]RSISample, 0, len(prices)-period)
	for i := period; i < len(prices); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := prices[j] - prices[j-1]
			if change > 0 {
				gains += change
			} else {
				losses += math.Abs(change)
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		var rsi float64
		if avgLoss == 0 {
			// No losing change in the window: the oscillator saturates.
			rsi = 100
		} else {
			rs := avgGain / avgLoss
			rsi = 100 - 100/(1+rs)
		}

		out = append(out, RSISample{
			Date:       dates[i],
			RSI:        rsi,
			Overbought: RSIOverbought,
			Oversold:   RSIOversold,
		})
	}
	return out, nil
}
