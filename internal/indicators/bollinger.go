package indicators

import (
	"fmt"
	"math"
	"time"
)

// Conventional Bollinger Bands parameters.
const (
	DefaultBollingerPeriod = 20
	DefaultBollingerK      = 2.0
)

// BollingerBands calculates a volatility envelope over a close-price series.
// For each full window, middle is the window mean and upper/lower sit
// k standard deviations away, using the population variance (divisor period).
// Sample i carries the date of input index i + period - 1. Output length is
// len(prices) - period + 1.
func BollingerBands(prices []float64, dates []time.Time, period int, k float64) ([]BollingerSample, error) {
	if err := checkInput(prices, dates, period); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("band width multiplier must be non-negative, got %v", k)
	}

	out := make([]BollingerSample, 0, len(prices)-period+1)
	for i := period - 1; i < len(prices); i++ {
		window := prices[i-period+1 : i+1]

		sum := 0.0
		for _, p := range window {
			sum += p
		}
		mean := sum / float64(period)

		variance := 0.0
		for _, p := range window {
			diff := p - mean
			variance += diff * diff
		}
		variance /= float64(period)
		band := k * math.Sqrt(variance)

		out = append(out, BollingerSample{
			Date:   dates[i],
			Middle: mean,
			Upper:  mean + band,
			Lower:  mean - band,
		})
	}
	return out, nil
}
