package economy

import (
	"context"
	"errors"

	"github.com/shercoin/shercoin/models"
)

// RedeemPromo redeems a promo code for the account. All business checks run
// before any mutation; the capacity check is repeated inside the store as a
// guarded increment, so concurrent redemptions near the cap cannot overshoot
// MaxUsage.
func (e *Engine) RedeemPromo(ctx context.Context, userID uint, code string) (int64, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	promo, err := e.store.PromoByCode(ctx, code)
	if err != nil {
		return 0, storageErr("load promo code", err)
	}
	if promo == nil || !promo.IsActive {
		return 0, ErrNotFound
	}
	if promo.UsedCount >= promo.MaxUsage {
		return 0, ErrLimitReached
	}
	if promo.ExpiresAt != nil && e.now().After(*promo.ExpiresAt) {
		return 0, ErrExpired
	}

	used, err := e.store.HasRedeemedPromo(ctx, userID, promo.ID)
	if err != nil {
		return 0, storageErr("load promo redemption", err)
	}
	if used {
		return 0, ErrAlreadyUsed
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return 0, storageErr("load balance", err)
	}
	if bal == nil {
		return 0, ErrNotFound
	}

	bal.Balance += promo.Reward

	redemption := &models.PromoRedemption{UserID: userID, PromoID: promo.ID, CreatedAt: e.now()}
	txn := &models.Transaction{
		UserID: userID,
		Type:   models.TxPromo,
		Amount: promo.Reward,
		Meta:   metaJSON(map[string]any{"code": promo.Code}),
	}
	if err := e.store.RedeemPromo(ctx, promo.ID, redemption, bal, txn); err != nil {
		// The store re-checks capacity and uniqueness atomically; surface
		// those as the business failures they are.
		switch {
		case isSentinel(err):
			return 0, err
		default:
			return 0, storageErr("redeem promo", err)
		}
	}
	return promo.Reward, nil
}

// isSentinel reports whether err already belongs to the engine taxonomy and
// should pass through untouched.
func isSentinel(err error) bool {
	for _, s := range []error{
		ErrRateLimited, ErrInsufficientEnergy, ErrInsufficientFunds,
		ErrNotFound, ErrAlreadyCompleted, ErrAlreadyUsed, ErrAlreadyClaimed,
		ErrLimitReached, ErrExpired, ErrInvalidState,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
