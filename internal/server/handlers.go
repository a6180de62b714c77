package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trade-journal-go/internal/indicators"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/performance"
	"trade-journal-go/internal/series"
	"trade-journal-go/internal/store"
)

// defaultEMAPeriod is used when the request doesn't carry a period parameter.
const defaultEMAPeriod = 20

// tradeRow is a visible trade together with its in-flight marker, so the UI
// can grey out rows the backend has not confirmed yet.
type tradeRow struct {
	models.Trade
	Pending bool `json:"pending"`
}

func (s *Server) listTradesHandler(w http.ResponseWriter, r *http.Request) {
	trades := s.journal.Trades()
	rows := make([]tradeRow, len(trades))
	for i, t := range trades {
		rows[i] = tradeRow{Trade: t, Pending: s.journal.IsPending(t.TradeID)}
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) addTradeHandler(w http.ResponseWriter, r *http.Request) {
	var form models.TradeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	trade, err := s.journal.AddTrade(r.Context(), form)
	if err != nil {
		s.writeError(w, mutationStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) updateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.TradePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	trade, err := s.journal.UpdateTrade(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, mutationStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) deleteTradeHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.DeleteTrade(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, mutationStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func mutationStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidTrade):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) performanceHandler(w http.ResponseWriter, r *http.Request) {
	window := performance.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = performance.Window30d
	}

	daily, summary, err := performance.Report(s.journal.Trades(), window, time.Now())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"days":    daily,
		"summary": summary,
	})
}

func (s *Server) indicatorsHandler(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("symbol query parameter is required"))
		return
	}
	days := 200
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid days parameter %q", v))
			return
		}
		days = parsed
	}

	points, err := s.feed.DailyCloses(r.Context(), symbol, days)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	priceSeries := series.Normalize(points)
	prices, dates := priceSeries.Closes(), priceSeries.Dates()

	cfg := s.cfg.Analytics
	var samples any
	switch kind := r.PathValue("kind"); kind {
	case "ema":
		period := defaultEMAPeriod
		if v := r.URL.Query().Get("period"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid period parameter %q", v))
				return
			}
			period = parsed
		}
		samples, err = indicators.EMA(prices, dates, period)
	case "rsi":
		samples, err = indicators.RSI(prices, dates, cfg.RSIPeriod)
	case "macd":
		samples, err = indicators.MACD(prices, dates, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	case "bollinger":
		samples, err = indicators.BollingerBands(prices, dates, cfg.BollingerPeriod, cfg.BollingerK)
	default:
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown indicator %q", kind))
		return
	}

	if errors.Is(err, indicators.ErrInsufficientData) {
		// Not enough history is an empty chart, not a failure.
		s.writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, samples)
}
