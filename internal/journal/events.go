package journal

import (
	"context"

	"go.uber.org/zap"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/store"
)

// ApplyEvent merges one push notification into the visible set. Events are
// applied in the order they are observed; for any id the set converges to a
// single record once the push and any pending local mutation have resolved.
func (j *Journal) ApplyEvent(ev store.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	id := ev.Trade.TradeID
	switch ev.Type {
	case store.EventInsert:
		if idx := j.indexLocked(id); idx >= 0 {
			// Already visible; take the authoritative values, never duplicate.
			j.trades[idx] = ev.Trade
			return
		}
		j.trades = append([]models.Trade{ev.Trade}, j.trades...)
	case store.EventUpdate:
		if idx := j.indexLocked(id); idx >= 0 {
			j.trades[idx] = ev.Trade
			return
		}
		if op, ok := j.pending[id]; ok && op.kind == opDelete {
			// Locally removed while a delete is in flight: refresh the
			// retained copy so a rollback restores the latest values.
			op.prior = ev.Trade
			return
		}
		// Update for a record this journal never saw; treat as insert.
		j.trades = append([]models.Trade{ev.Trade}, j.trades...)
	case store.EventDelete:
		j.removeLocked(id)
	default:
		j.logger.Warn("Ignoring unknown push event", zap.String("event_type", string(ev.Type)))
	}
}

// Consume applies push events from the subscription channel until the
// context is cancelled or the channel closes.
func (j *Journal) Consume(ctx context.Context, events <-chan store.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			j.ApplyEvent(ev)
		}
	}
}
