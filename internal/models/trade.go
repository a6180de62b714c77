package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Trade direction.
const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Trade lifecycle status.
const (
	StatusOpen      = "OPEN"
	StatusClosed    = "CLOSED"
	StatusCancelled = "CANCELLED"
)

// Trade represents a single journal entry for a position.
//
// ExitPrice and ExitDate are both set or both nil; StatusClosed implies both
// are set. The record is mutated only through the journal's update path.
type Trade struct {
	gorm.Model
	TradeID    string     `gorm:"uniqueIndex" json:"id"`
	Symbol     string     `json:"symbol"`
	Direction  string     `json:"direction"` // "LONG" or "SHORT"
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	Quantity   int        `json:"quantity"`
	EntryDate  time.Time  `json:"entry_date"`
	ExitDate   *time.Time `json:"exit_date,omitempty"`
	Status     string     `json:"status"` // "OPEN", "CLOSED" or "CANCELLED"
}

// RealizedPnL returns the signed profit locked in by a closed trade.
// Open and cancelled trades contribute zero; there is no live price feed
// to mark open positions against.
func (t *Trade) RealizedPnL() float64 {
	if t.Status != StatusClosed || t.ExitPrice == nil {
		return 0
	}
	multiplier := 1.0
	if t.Direction == DirectionShort {
		multiplier = -1.0
	}
	return (*t.ExitPrice - t.EntryPrice) * float64(t.Quantity) * multiplier
}

// TradeForm carries user input for creating or updating a trade.
// Optional fields are pointers so an absent value can be told apart
// from a zero value on partial updates.
type TradeForm struct {
	Symbol     string     `json:"symbol" validate:"required,max=10,uppercase,alpha"`
	Direction  string     `json:"direction" validate:"required,oneof=LONG SHORT"`
	EntryPrice float64    `json:"entry_price" validate:"required,gt=0,lte=1000000"`
	ExitPrice  *float64   `json:"exit_price,omitempty" validate:"omitempty,gt=0,lte=1000000"`
	Quantity   int        `json:"quantity" validate:"required,gt=0,lte=1000000"`
	EntryDate  time.Time  `json:"entry_date" validate:"required"`
	ExitDate   *time.Time `json:"exit_date,omitempty"`
	Status     string     `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED CANCELLED"`
}

// ErrInvalidTrade marks input rejected before any mutation was attempted.
var ErrInvalidTrade = errors.New("invalid trade input")

var validate = validator.New()

// Validate rejects malformed trade input before any mutation is attempted.
func (f *TradeForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	// Exit price and exit date travel together.
	if (f.ExitPrice == nil) != (f.ExitDate == nil) {
		return fmt.Errorf("%w: exit price and exit date must both be set or both be absent", ErrInvalidTrade)
	}
	if f.Status == StatusClosed && f.ExitPrice == nil {
		return fmt.Errorf("%w: closed trade requires an exit price and exit date", ErrInvalidTrade)
	}
	return nil
}

// ToTrade builds a full Trade record from the form.
func (f *TradeForm) ToTrade(id string, now time.Time) Trade {
	status := f.Status
	if status == "" {
		status = StatusOpen
	}
	return Trade{
		TradeID:    id,
		Symbol:     strings.ToUpper(f.Symbol),
		Direction:  f.Direction,
		EntryPrice: f.EntryPrice,
		ExitPrice:  f.ExitPrice,
		Quantity:   f.Quantity,
		EntryDate:  f.EntryDate,
		ExitDate:   f.ExitDate,
		Status:     status,
		Model:      gorm.Model{CreatedAt: now, UpdatedAt: now},
	}
}
