package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trade-journal-go/internal/models"
)

// ErrNotFound is returned when a trade id does not exist in the store.
var ErrNotFound = errors.New("trade not found")

// Store persists trades and emits a push event for every successful mutation,
// mirroring what a hosted backend's change subscription would deliver.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
	hub    *Hub
}

// NewStore creates a trade store on top of an open database handle.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.Named("store"),
		hub:    NewHub(logger),
	}
}

// ListTrades returns all trades ordered by creation time descending.
func (s *Store) ListTrades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("could not list trades: %w", err)
	}
	return trades, nil
}

// InsertTrade persists a new trade and returns the stored record with its
// authoritative id assigned.
func (s *Store) InsertTrade(ctx context.Context, trade models.Trade) (models.Trade, error) {
	if trade.TradeID == "" {
		trade.TradeID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(&trade).Error; err != nil {
		return models.Trade{}, fmt.Errorf("could not insert trade: %w", err)
	}
	s.logger.Debug("Trade inserted", zap.String("trade_id", trade.TradeID), zap.String("symbol", trade.Symbol))
	s.hub.Publish(Event{Type: EventInsert, Trade: trade})
	return trade, nil
}

// UpdateTrade applies a partial update to the trade with the given id and
// returns the stored record.
func (s *Store) UpdateTrade(ctx context.Context, id string, patch models.TradePatch) (models.Trade, error) {
	var trade models.Trade
	err := s.db.WithContext(ctx).Where("trade_id = ?", id).First(&trade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Trade{}, fmt.Errorf("could not update trade %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Trade{}, fmt.Errorf("could not load trade %s: %w", id, err)
	}

	patch.Apply(&trade)
	if err := s.db.WithContext(ctx).Save(&trade).Error; err != nil {
		return models.Trade{}, fmt.Errorf("could not update trade %s: %w", id, err)
	}
	s.logger.Debug("Trade updated", zap.String("trade_id", id))
	s.hub.Publish(Event{Type: EventUpdate, Trade: trade})
	return trade, nil
}

// DeleteTrade removes the trade with the given id.
func (s *Store) DeleteTrade(ctx context.Context, id string) error {
	var trade models.Trade
	err := s.db.WithContext(ctx).Where("trade_id = ?", id).First(&trade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("could not delete trade %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("could not load trade %s: %w", id, err)
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(&trade).Error; err != nil {
		return fmt.Errorf("could not delete trade %s: %w", id, err)
	}
	s.logger.Debug("Trade deleted", zap.String("trade_id", id))
	s.hub.Publish(Event{Type: EventDelete, Trade: trade})
	return nil
}

// Subscribe registers a push subscriber for trade change events.
// The returned cancel function must be called to release the subscription.
func (s *Store) Subscribe() (<-chan Event, func()) {
	return s.hub.Subscribe()
}
