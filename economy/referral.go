package economy

import (
	"context"
)

// ReferralFriend is one invited account in the summary.
type ReferralFriend struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Earned    int64  `json:"earned"`
}

// ReferralSummary aggregates an account's invitations. Earnings are the flat
// per-friend bonus; an ongoing share of friends' passive income is advertised
// in the product but has never been implemented.
type ReferralSummary struct {
	InvitedCount int              `json:"invited_count"`
	ActiveCount  int              `json:"active_count"`
	TotalEarned  int64            `json:"total_earned"`
	Friends      []ReferralFriend `json:"friends"`
}

// ReferralsFor builds the invitation summary for an account.
func (e *Engine) ReferralsFor(ctx context.Context, userID uint) (*ReferralSummary, error) {
	refs, err := e.store.Referrals(ctx, userID)
	if err != nil {
		return nil, storageErr("load referrals", err)
	}

	friends := make([]ReferralFriend, 0, len(refs))
	for _, ref := range refs {
		friend := ReferralFriend{Earned: ReferralBonus}
		u, err := e.store.User(ctx, ref.FriendID)
		if err != nil {
			return nil, storageErr("load friend", err)
		}
		if u != nil {
			friend.ID = u.ID
			friend.Username = u.Username
			friend.FirstName = u.FirstName
		}
		friends = append(friends, friend)
	}

	return &ReferralSummary{
		InvitedCount: len(friends),
		ActiveCount:  len(friends),
		TotalEarned:  int64(len(friends)) * ReferralBonus,
		Friends:      friends,
	}, nil
}
