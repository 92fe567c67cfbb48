package models

import "time"

// Referral is created exactly once, when the friend account is registered
// with a referrer. BonusGiven is reserved for a future idempotent retry path;
// today the flat bonus is granted in the same transaction that inserts the row.
type Referral struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReferrerID uint      `gorm:"index;not null" json:"referrer_id"`
	FriendID   uint      `gorm:"uniqueIndex;not null" json:"friend_id"`
	BonusGiven bool      `gorm:"not null;default:false" json:"bonus_given"`
	CreatedAt  time.Time `json:"created_at"`
}
