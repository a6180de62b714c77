// Package journal maintains the visible trade collection: it applies local
// mutations optimistically before the backend confirms them, reconciles or
// rolls them back when the backend responds, and merges push events from the
// store's change subscription into the same set.
package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/store"
)

// Backend is the trade source the journal reconciles against.
type Backend interface {
	ListTrades(ctx context.Context) ([]models.Trade, error)
	InsertTrade(ctx context.Context, trade models.Trade) (models.Trade, error)
	UpdateTrade(ctx context.Context, id string, patch models.TradePatch) (models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error
}

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opDelete
)

// pendingOp is one row of the per-id state machine table. An id is in state
// PENDING while its row exists; removing the row is the terminal transition.
// The token fences completions: a second mutation on the same id replaces the
// row with a fresh token, so the superseded operation's completion (including
// its rollback) becomes a no-op instead of clobbering newer state.
type pendingOp struct {
	token uint64
	kind  opKind
	prior models.Trade // retained copy for delete rollback
}

// Journal is the reconciliation layer over the visible trade list.
// The list is ordered most recent first, matching the backend's ordering.
type Journal struct {
	mu        sync.Mutex
	logger    *zap.Logger
	backend   Backend
	trades    []models.Trade
	pending   map[string]*pendingOp
	nextToken uint64
	now       func() time.Time
}

// NewJournal creates a journal over the given backend.
func NewJournal(backend Backend, logger *zap.Logger) *Journal {
	return &Journal{
		logger:  logger.Named("journal"),
		backend: backend,
		pending: make(map[string]*pendingOp),
		now:     time.Now,
	}
}

// Load replaces the visible set with the backend's current collection.
func (j *Journal) Load(ctx context.Context) error {
	trades, err := j.backend.ListTrades(ctx)
	if err != nil {
		return fmt.Errorf("could not load trades: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.trades = trades
	j.logger.Info("Journal loaded", zap.Int("trades", len(trades)))
	return nil
}

// Trades returns a snapshot of the visible trade collection. The snapshot may
// include optimistic records that the backend has not confirmed yet.
func (j *Journal) Trades() []models.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]models.Trade, len(j.trades))
	copy(out, j.trades)
	return out
}

// IsPending reports whether a mutation for the given trade id is in flight.
func (j *Journal) IsPending(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.pending[id]
	return ok
}

// AddTrade validates the form, inserts an optimistic record at the head of
// the visible set and asks the backend to persist it. On success the
// temporary record is removed; the authoritative one arrives in the return
// value and through the push channel, which already deduplicates by id.
// On failure the temporary record is removed and the error surfaced, leaving
// the collection exactly as it was before the call.
func (j *Journal) AddTrade(ctx context.Context, form models.TradeForm) (models.Trade, error) {
	if err := form.Validate(); err != nil {
		return models.Trade{}, err
	}

	tempID := "temp-" + uuid.NewString()
	optimistic := form.ToTrade(tempID, j.now())

	j.mu.Lock()
	j.trades = append([]models.Trade{optimistic}, j.trades...)
	token := j.beginOp(tempID, &pendingOp{kind: opInsert})
	j.mu.Unlock()

	toPersist := optimistic
	toPersist.TradeID = "" // the backend assigns the authoritative id
	persisted, err := j.backend.InsertTrade(ctx, toPersist)

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, settled := j.settleOp(tempID, token); !settled {
		return models.Trade{}, fmt.Errorf("insert superseded for %s", tempID)
	}
	j.removeLocked(tempID)
	if err != nil {
		j.logger.Warn("Insert rejected, optimistic record removed", zap.Error(err))
		return models.Trade{}, fmt.Errorf("insert failed: %w", err)
	}
	return persisted, nil
}

// UpdateTrade applies the patch to the visible record immediately and asks
// the backend to persist it. On failure exactly the patched fields are
// restored from the pre-update snapshot; fields a concurrent push touched in
// the meantime are left alone.
func (j *Journal) UpdateTrade(ctx context.Context, id string, patch models.TradePatch) (models.Trade, error) {
	j.mu.Lock()
	idx := j.indexLocked(id)
	if idx < 0 {
		j.mu.Unlock()
		return models.Trade{}, fmt.Errorf("cannot update %s: %w", id, store.ErrNotFound)
	}
	prior := j.trades[idx]
	patch.Apply(&j.trades[idx])
	token := j.beginOp(id, &pendingOp{kind: opUpdate, prior: prior})
	j.mu.Unlock()

	persisted, err := j.backend.UpdateTrade(ctx, id, patch)

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, settled := j.settleOp(id, token); !settled {
		// A later mutation took over this id; its completion settles the state.
		if err != nil {
			return models.Trade{}, fmt.Errorf("update failed: %w", err)
		}
		return persisted, nil
	}
	if err != nil {
		if idx := j.indexLocked(id); idx >= 0 {
			patch.Revert(&j.trades[idx], prior)
		}
		j.logger.Warn("Update rejected, patched fields reverted", zap.String("trade_id", id), zap.Error(err))
		return models.Trade{}, fmt.Errorf("update failed: %w", err)
	}
	return persisted, nil
}

// DeleteTrade removes the record from the visible set immediately, retaining
// a copy, and asks the backend to delete it. On failure the retained copy is
// re-inserted at the head of the list.
func (j *Journal) DeleteTrade(ctx context.Context, id string) error {
	j.mu.Lock()
	idx := j.indexLocked(id)
	if idx < 0 {
		j.mu.Unlock()
		return fmt.Errorf("cannot delete %s: %w", id, store.ErrNotFound)
	}
	retained := j.trades[idx]
	j.trades = append(j.trades[:idx], j.trades[idx+1:]...)
	token := j.beginOp(id, &pendingOp{kind: opDelete, prior: retained})
	j.mu.Unlock()

	err := j.backend.DeleteTrade(ctx, id)

	j.mu.Lock()
	defer j.mu.Unlock()
	op, settled := j.settleOp(id, token)
	if !settled {
		if err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		return nil
	}
	if err != nil {
		// op.prior is the retained copy, refreshed by any push update that
		// arrived while the delete was in flight.
		if j.indexLocked(id) < 0 {
			j.trades = append([]models.Trade{op.prior}, j.trades...)
		}
		j.logger.Warn("Delete rejected, record restored", zap.String("trade_id", id), zap.Error(err))
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// beginOp registers (or supersedes) the pending operation for an id and
// returns its fencing token. Callers hold the mutex.
func (j *Journal) beginOp(id string, op *pendingOp) uint64 {
	j.nextToken++
	op.token = j.nextToken
	if _, exists := j.pending[id]; exists {
		j.logger.Debug("Superseding pending operation", zap.String("trade_id", id))
	}
	j.pending[id] = op
	return op.token
}

// settleOp clears the pending row if it still belongs to the given token and
// returns it. It reports false when a newer mutation superseded the
// operation, in which case the caller must not mutate the visible set.
// Callers hold the mutex.
func (j *Journal) settleOp(id string, token uint64) (*pendingOp, bool) {
	op, ok := j.pending[id]
	if !ok || op.token != token {
		return nil, false
	}
	delete(j.pending, id)
	return op, true
}

func (j *Journal) indexLocked(id string) int {
	for i := range j.trades {
		if j.trades[i].TradeID == id {
			return i
		}
	}
	return -1
}

func (j *Journal) removeLocked(id string) {
	if idx := j.indexLocked(id); idx >= 0 {
		j.trades = append(j.trades[:idx], j.trades[idx+1:]...)
	}
}
