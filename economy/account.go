package economy

import (
	"context"

	"github.com/shercoin/shercoin/models"
)

// NewAccount carries the verified identity attributes for registration. The
// caller (the auth layer) has already validated the Telegram payload.
type NewAccount struct {
	TelegramID int64
	Username   string
	FirstName  string
	Language   string
	ReferrerID *uint
}

// Login finds the account for a verified Telegram identity, creating it on
// first contact. The returned bool reports whether the account was created.
func (e *Engine) Login(ctx context.Context, acc NewAccount) (*models.User, bool, error) {
	user, err := e.store.UserByTelegramID(ctx, acc.TelegramID)
	if err != nil {
		return nil, false, storageErr("load user", err)
	}
	if user != nil {
		if err := e.store.TouchLogin(ctx, user.ID, e.now()); err != nil {
			return nil, false, storageErr("touch login", err)
		}
		return user, false, nil
	}

	user, err = e.register(ctx, acc)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// register creates the account with its balance row and, when a valid
// referrer is named, grants the one-time referral bonus. The referrer link
// is set once here and never mutated.
func (e *Engine) register(ctx context.Context, acc NewAccount) (*models.User, error) {
	lang := acc.Language
	if lang == "" {
		lang = "uz"
	}

	referrerID := acc.ReferrerID
	if referrerID != nil {
		referrer, err := e.store.User(ctx, *referrerID)
		if err != nil {
			return nil, storageErr("load referrer", err)
		}
		if referrer == nil {
			referrerID = nil
		}
	}

	now := e.now()
	user := &models.User{
		TelegramID:  acc.TelegramID,
		Username:    acc.Username,
		FirstName:   acc.FirstName,
		Language:    lang,
		ReferrerID:  referrerID,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	balance := &models.Balance{
		Energy:          DefaultMaxEnergy,
		MaxEnergy:       DefaultMaxEnergy,
		Level:           1,
		EnergyUpdatedAt: now,
	}
	if err := e.store.CreateAccount(ctx, user, balance); err != nil {
		return nil, storageErr("create account", err)
	}

	if referrerID != nil {
		if err := e.grantReferralBonus(ctx, *referrerID, user.ID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// grantReferralBonus credits the referrer its flat bonus and inserts the
// referral row in one atomic mutation, serialized against the referrer's
// other operations.
func (e *Engine) grantReferralBonus(ctx context.Context, referrerID, friendID uint) error {
	unlock := e.locks.lock(referrerID)
	defer unlock()

	bal, err := e.store.Balance(ctx, referrerID)
	if err != nil {
		return storageErr("load referrer balance", err)
	}
	if bal == nil {
		return ErrInvalidState
	}

	bal.Balance += ReferralBonus

	referral := &models.Referral{ReferrerID: referrerID, FriendID: friendID, CreatedAt: e.now()}
	txn := &models.Transaction{
		UserID: referrerID,
		Type:   models.TxReferral,
		Amount: ReferralBonus,
		Meta:   metaJSON(map[string]any{"friend_id": friendID}),
	}
	if err := e.store.CreateReferral(ctx, referral, bal, txn); err != nil {
		return storageErr("create referral", err)
	}
	return nil
}
