// Package indicators implements the stateless technical-analysis transforms
// of the analytics core: EMA, RSI, MACD and Bollinger Bands. Every function
// is a pure transform over a date-ordered close-price series and is safe to
// call repeatedly with identical results for identical inputs.
package indicators

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientData reports that the input series is shorter than the seed
// window an indicator needs. Callers render it as an empty result; it never
// turns into a NaN in the output.
var ErrInsufficientData = errors.New("not enough data")

// Fixed RSI reference lines carried on every sample for downstream display.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// EMASample is one exponential moving average output row.
type EMASample struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// RSISample is one relative strength index output row.
type RSISample struct {
	Date       time.Time `json:"date"`
	RSI        float64   `json:"rsi"`
	Overbought float64   `json:"overbought"`
	Oversold   float64   `json:"oversold"`
}

// MACDSample is one MACD output row, aligned to the signal line.
type MACDSample struct {
	Date      time.Time `json:"date"`
	MACD      float64   `json:"macd"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
}

// BollingerSample is one Bollinger Bands output row.
type BollingerSample struct {
	Date   time.Time `json:"date"`
	Middle float64   `json:"middle"`
	Upper  float64   `json:"upper"`
	Lower  float64   `json:"lower"`
}

// alignTail trims values from the front so the last n entries remain.
// EMA outputs of different periods line up at the tail, so trimming from the
// front is the one correct way to bring them to a common index base.
func alignTail(values []float64, n int) ([]float64, error) {
	if n < 0 || n > len(values) {
		return nil, fmt.Errorf("cannot align %d values to length %d", len(values), n)
	}
	return values[len(values)-n:], nil
}

func checkInput(prices []float64, dates []time.Time, period int) error {
	if period <= 0 {
		return fmt.Errorf("period must be positive, got %d", period)
	}
	if len(dates) != len(prices) {
		return fmt.Errorf("dates and prices length mismatch: %d vs %d", len(dates), len(prices))
	}
	if len(prices) < period {
		return fmt.Errorf("%w: need %d prices, got %d", ErrInsufficientData, period, len(prices))
	}
	return nil
}
