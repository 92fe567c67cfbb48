package economy

import (
	"context"
	"time"

	"github.com/shercoin/shercoin/models"
)

// BoostStatus is a catalog boost with the account's activation overlay.
type BoostStatus struct {
	models.Boost
	ActiveUntil *time.Time `json:"active_until,omitempty"`
}

// BoostCatalog lists all boosts with, per boost, the expiry of the account's
// unexpired grant if one exists.
func (e *Engine) BoostCatalog(ctx context.Context, userID uint) ([]BoostStatus, error) {
	boosts, err := e.store.Boosts(ctx)
	if err != nil {
		return nil, storageErr("load boosts", err)
	}
	grants, err := e.store.ActiveBoostGrants(ctx, userID, e.now())
	if err != nil {
		return nil, storageErr("load boost grants", err)
	}

	byBoost := make(map[uint]time.Time, len(grants))
	for _, g := range grants {
		if cur, ok := byBoost[g.BoostID]; !ok || g.ExpiresAt.After(cur) {
			byBoost[g.BoostID] = g.ExpiresAt
		}
	}

	out := make([]BoostStatus, 0, len(boosts))
	for _, b := range boosts {
		s := BoostStatus{Boost: b}
		if until, ok := byBoost[b.ID]; ok {
			u := until
			s.ActiveUntil = &u
		}
		out = append(out, s)
	}
	return out, nil
}

// ActivateBoost purchases a boost: catalog lookup, funds gate, then one
// atomic grant insert + balance debit + ledger append. Prior unexpired
// grants of the same code are left alone; resolution consults their union.
func (e *Engine) ActivateBoost(ctx context.Context, userID, boostID uint) (*models.BoostGrant, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	boost, err := e.store.Boost(ctx, boostID)
	if err != nil {
		return nil, storageErr("load boost", err)
	}
	if boost == nil {
		return nil, ErrNotFound
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return nil, storageErr("load balance", err)
	}
	if bal == nil {
		return nil, ErrNotFound
	}
	if bal.Balance < boost.Price {
		return nil, ErrInsufficientFunds
	}

	now := e.now()
	grant := &models.BoostGrant{
		UserID:    userID,
		BoostID:   boost.ID,
		StartedAt: now,
		ExpiresAt: now.Add(time.Duration(boost.DurationSeconds) * time.Second),
		IsActive:  true,
	}
	bal.Balance -= boost.Price

	txn := &models.Transaction{
		UserID: userID,
		Type:   models.TxBoostBuy,
		Amount: -boost.Price,
		Meta:   metaJSON(map[string]any{"boost_id": boost.ID}),
	}
	if err := e.store.ActivateBoost(ctx, grant, bal, txn); err != nil {
		return nil, storageErr("activate boost", err)
	}
	return grant, nil
}
