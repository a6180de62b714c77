package models

import "time"

// TradePatch is a partial update to a trade. Nil fields are left untouched.
// The same patch doubles as the rollback descriptor: Revert restores exactly
// the fields the patch mentioned from a snapshot taken before it was applied.
type TradePatch struct {
	Symbol     *string    `json:"symbol,omitempty"`
	Direction  *string    `json:"direction,omitempty"`
	EntryPrice *float64   `json:"entry_price,omitempty"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	Quantity   *int       `json:"quantity,omitempty"`
	EntryDate  *time.Time `json:"entry_date,omitempty"`
	ExitDate   *time.Time `json:"exit_date,omitempty"`
	Status     *string    `json:"status,omitempty"`
}

// Apply copies the patch's non-nil fields onto the trade.
func (p *TradePatch) Apply(t *Trade) {
	if p.Symbol != nil {
		t.Symbol = *p.Symbol
	}
	if p.Direction != nil {
		t.Direction = *p.Direction
	}
	if p.EntryPrice != nil {
		t.EntryPrice = *p.EntryPrice
	}
	if p.ExitPrice != nil {
		t.ExitPrice = p.ExitPrice
	}
	if p.Quantity != nil {
		t.Quantity = *p.Quantity
	}
	if p.EntryDate != nil {
		t.EntryDate = *p.EntryDate
	}
	if p.ExitDate != nil {
		t.ExitDate = p.ExitDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// Revert copies the values a snapshot held for exactly the fields this patch
// mentions. Fields the patch never touched are left alone, so a rollback
// cannot clobber changes a concurrent push applied to other fields.
func (p *TradePatch) Revert(t *Trade, prior Trade) {
	if p.Symbol != nil {
		t.Symbol = prior.Symbol
	}
	if p.Direction != nil {
		t.Direction = prior.Direction
	}
	if p.EntryPrice != nil {
		t.EntryPrice = prior.EntryPrice
	}
	if p.ExitPrice != nil {
		t.ExitPrice = prior.ExitPrice
	}
	if p.Quantity != nil {
		t.Quantity = prior.Quantity
	}
	if p.EntryDate != nil {
		t.EntryDate = prior.EntryDate
	}
	if p.ExitDate != nil {
		t.ExitDate = prior.ExitDate
	}
	if p.Status != nil {
		t.Status = prior.Status
	}
}
