package economy

import (
	"context"
	"time"

	"github.com/shercoin/shercoin/models"
)

// DailyRewardPerStreak scales the daily-login payout: streak * 100.
const DailyRewardPerStreak = 100

// DailyLoginState is the read-only preview of the next claim.
type DailyLoginState struct {
	Streak   int  `json:"streak"`
	CanClaim bool `json:"can_claim"`
}

// DailyClaim reports one granted daily-login reward.
type DailyClaim struct {
	Reward int64 `json:"reward"`
	Streak int   `json:"streak"`
}

// dailyStreak applies the streak law against the most recent login row:
// same day keeps the streak, the next day extends it, any longer gap resets
// to 1. Days are measured as whole 24h periods of elapsed time.
func dailyStreak(last *models.DailyLogin, now time.Time) (streak int, sameDay bool, err error) {
	if last == nil {
		return 1, false, nil
	}
	diff := now.Sub(last.LoginDate)
	if diff < 0 {
		return 0, false, ErrInvalidState
	}
	switch days := int(diff.Hours() / 24); {
	case days == 0:
		return last.Streak, true, nil
	case days == 1:
		return last.Streak + 1, false, nil
	default:
		return 1, false, nil
	}
}

// DailyLoginStatus previews the claimable streak without mutating anything.
func (e *Engine) DailyLoginStatus(ctx context.Context, userID uint) (*DailyLoginState, error) {
	last, err := e.store.LastDailyLogin(ctx, userID)
	if err != nil {
		return nil, storageErr("load daily login", err)
	}

	streak, sameDay, err := dailyStreak(last, e.now())
	if err != nil {
		return nil, err
	}
	canClaim := true
	if sameDay {
		canClaim = !last.RewardClaimed
	}
	return &DailyLoginState{Streak: streak, CanClaim: canClaim}, nil
}

// ClaimDailyLogin grants streak*100 coins and appends a new history row with
// the achieved streak. A second claim within the same day fails before any
// mutation.
func (e *Engine) ClaimDailyLogin(ctx context.Context, userID uint) (*DailyClaim, error) {
	unlock := e.locks.lock(userID)
	defer unlock()

	now := e.now()
	last, err := e.store.LastDailyLogin(ctx, userID)
	if err != nil {
		return nil, storageErr("load daily login", err)
	}

	streak, sameDay, err := dailyStreak(last, now)
	if err != nil {
		return nil, err
	}
	if sameDay && last.RewardClaimed {
		return nil, ErrAlreadyClaimed
	}

	bal, err := e.store.Balance(ctx, userID)
	if err != nil {
		return nil, storageErr("load balance", err)
	}
	if bal == nil {
		return nil, ErrNotFound
	}

	reward := int64(streak) * DailyRewardPerStreak
	bal.Balance += reward

	login := &models.DailyLogin{
		UserID:        userID,
		LoginDate:     now,
		Streak:        streak,
		RewardClaimed: true,
	}
	txn := &models.Transaction{
		UserID: userID,
		Type:   models.TxDailyLogin,
		Amount: reward,
		Meta:   metaJSON(map[string]any{"streak": streak}),
	}
	if err := e.store.RecordDailyLogin(ctx, login, bal, txn); err != nil {
		return nil, storageErr("record daily login", err)
	}
	return &DailyClaim{Reward: reward, Streak: streak}, nil
}
