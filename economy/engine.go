package economy

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shercoin/shercoin/models"
)

// Engine-wide tuning constants.
const (
	DefaultMaxEnergy = 1000
	LevelXP          = 1000
	ReferralBonus    = 1000
)

// Engine is the game economy orchestrator. Requests from different accounts
// run concurrently; every mutating operation for one account serializes
// through a keyed lock so read-compute-write cycles never lose updates.
type Engine struct {
	store Store
	now   func() time.Time

	taps  *tapGuard
	locks lockTable
}

// NewEngine creates an engine on top of the given ledger store.
func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
		taps:  newTapGuard(),
		locks: lockTable{entries: make(map[uint]*lockEntry)},
	}
}

// lockTable hands out one mutex per account id. Entries are reference
// counted and removed as soon as the last holder releases, so the table stays
// bounded by the number of in-flight requests.
type lockTable struct {
	mu      sync.Mutex
	entries map[uint]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (t *lockTable) lock(id uint) func() {
	t.mu.Lock()
	e, ok := t.entries[id]
	if !ok {
		e = &lockEntry{}
		t.entries[id] = e
	}
	e.refs++
	t.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		t.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(t.entries, id)
		}
		t.mu.Unlock()
	}
}

// levelForXP derives the level purely from cumulative experience. It is
// recomputed on every XP change rather than incremented, so it can never
// drift.
func levelForXP(xp int64) int {
	return int(xp/LevelXP) + 1
}

// metaJSON renders transaction metadata; marshal failures degrade to an
// empty meta rather than failing the operation.
func metaJSON(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(b)
}

// TapResult reports the outcome of one accepted tap.
type TapResult struct {
	CoinsAdded int64 `json:"coins_added"`
	Energy     int   `json:"energy"`
	Multiplier int   `json:"multiplier"`
}

// Tap processes one tap: admission, energy reconciliation, boost resolution,
// then a single atomic mutation of balance, energy, tap count, and XP plus
// the ledger append. On any failure nothing is persisted.
func (e *Engine) Tap(ctx context.Context, userID uint) (*TapResult, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	now := e.now()
	if !e.taps.admit(userID, now) {
		return nil, ErrRateLimited
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return nil, storageErr("load balance", err)
	}
	if bal == nil {
		return nil, ErrNotFound
	}

	energy, _, err := reconcileEnergy(bal, now)
	if err != nil {
		return nil, err
	}
	if energy < 1 {
		return nil, ErrInsufficientEnergy
	}

	mult, err := e.tapMultiplier(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	// Energy cost is flat: one unit per tap regardless of the multiplier.
	bal.Balance += int64(mult)
	bal.Energy = energy - 1
	bal.EnergyUpdatedAt = now
	bal.TotalTaps++
	bal.XP++
	bal.Level = levelForXP(bal.XP)

	txn := &models.Transaction{UserID: userID, Type: models.TxTap, Amount: int64(mult)}
	if err := e.store.SaveBalance(ctx, bal, txn); err != nil {
		return nil, storageErr("apply tap", err)
	}

	return &TapResult{CoinsAdded: int64(mult), Energy: bal.Energy, Multiplier: mult}, nil
}

// tapMultiplier resolves the effective tap yield from unexpired boost grants.
// DOUBLE_TAP yields 2; multiple simultaneous grants of the same code do not
// stack.
func (e *Engine) tapMultiplier(ctx context.Context, userID uint, now time.Time) (int, error) {
	grants, err := e.store.ActiveBoostGrants(ctx, userID, now)
	if err != nil {
		return 0, storageErr("load boost grants", err)
	}
	for _, g := range grants {
		boost, err := e.store.Boost(ctx, g.BoostID)
		if err != nil {
			return 0, storageErr("load boost", err)
		}
		if boost != nil && boost.Code == models.BoostDoubleTap {
			return 2, nil
		}
	}
	return 1, nil
}

// Profile returns the user and its balance with energy reconciled. When
// regeneration occurred the reconciled value is persisted so the next read
// starts from a fresh anchor.
func (e *Engine) Profile(ctx context.Context, userID uint) (*models.User, *models.Balance, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	user, err := e.store.User(ctx, userID)
	if err != nil {
		return nil, nil, storageErr("load user", err)
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return nil, nil, storageErr("load balance", err)
	}
	if bal == nil {
		return nil, nil, ErrNotFound
	}

	now := e.now()
	energy, changed, err := reconcileEnergy(bal, now)
	if err != nil {
		return nil, nil, err
	}
	if changed {
		bal.Energy = energy
		bal.EnergyUpdatedAt = now
		if err := e.store.SaveBalance(ctx, bal); err != nil {
			return nil, nil, storageErr("persist energy", err)
		}
	}

	return user, bal, nil
}

// History returns the most recent ledger rows for an account.
func (e *Engine) History(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	txns, err := e.store.TransactionsFor(ctx, userID, limit)
	if err != nil {
		return nil, storageErr("load transactions", err)
	}
	return txns, nil
}
