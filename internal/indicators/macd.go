package indicators

import (
	"fmt"
	"time"
)

// Conventional MACD parameters.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACD calculates moving average convergence divergence over a close-price
// series. The fast EMA output is longer than the slow one, so it is trimmed
// from the front before subtraction; the resulting MACD line feeds its own
// signal EMA, and the published samples are aligned to the signal line, the
// shortest of the three. Sample i maps back to input index
// i + signal - 1 + slow - 1 and carries that price's date. For every sample,
// histogram == macd - signal exactly.
func MACD(prices []float64, dates []time.Time, fast, slow, signal int) ([]MACDSample, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, fmt.Errorf("periods must be positive, got fast=%d slow=%d signal=%d", fast, slow, signal)
	}
	if fast >= slow {
		return nil, fmt.Errorf("fast period %d must be shorter than slow period %d", fast, slow)
	}
	// The signal EMA needs a seed window of its own on top of the slow seed.
	if err := checkInput(prices, dates, slow+signal-1); err != nil {
		return nil, err
	}

	fastEMA, err := EMAValues(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMAValues(prices, slow)
	if err != nil {
		return nil, err
	}

	fastAligned, err := alignTail(fastEMA, len(slowEMA))
	if err != nil {
		return nil, err
	}

	macdLine := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macdLine[i] = fastAligned[i] - slowEMA[i]
	}

	signalLine, err := EMAValues(macdLine, signal)
	if err != nil {
		return nil, err
	}
	macdAligned, err := alignTail(macdLine, len(signalLine))
	if err != nil {
		return nil, err
	}

	// macdAligned[i] was computed at price index i + (signal-1) + (slow-1).
	offset := signal - 1 + slow - 1
	out := make([]MACDSample, len(signalLine))
	for i := range signalLine {
		out[i] = MACDSample{
			Date:      dates[i+offset],
			MACD:      macdAligned[i],
			Signal:    signalLine[i],
			Histogram: macdAligned[i] - signalLine[i],
		}
	}
	return out, nil
}
