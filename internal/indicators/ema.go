package indicators

import (
	"fmt"
	"time"
)

// EMAValues calculates the exponential moving average over any numeric
// series. The first output value is the arithmetic mean of the first period
// inputs; each subsequent value is price*alpha + prev*(1-alpha) with
// alpha = 2/(period+1). Output length is len(values) - period + 1.
func EMAValues(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period {
		return nil, fmt.Errorf("%w: need %d values, got %d", ErrInsufficientData, period, len(values))
	}

	multiplier := 2.0 / float64(period+1)

	// Seed with the SMA of the first period values.
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)

	out := make([]float64, 0, len(values)-period+1)
	out = append(out, ema)

	for i := period; i < len(values); i++ {
		ema = values[i]*multiplier + ema*(1-multiplier)
		out = append(out, ema)
	}
	return out, nil
}

// EMA calculates the exponential moving average of a close-price series.
// Sample i carries the date of the last price in its window, i.e. input
// index i + period - 1.
func EMA(prices []float64, dates []time.Time, period int) ([]EMASample, error) {
	if err := checkInput(prices, dates, period); err != nil {
		return nil, err
	}

	values, err := EMAValues(prices, period)
	if err != nil {
		return nil, err
	}

	out := make([]EMASample, len(values))
	for i, v := range values {
		out[i] = EMASample{Date: dates[i+period-1], Value: v}
	}
	return out, nil
}

// SMAValues calculates the simple moving average for each full window of
// period values. Output length is len(values) - period + 1.
func SMAValues(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period {
		return nil, fmt.Errorf("%w: need %d values, got %d", ErrInsufficientData, period, len(values))
	}

	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out, nil
}
