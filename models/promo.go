package models

import "time"

// PromoCode is a capacity- and time-bounded reward token. UsedCount is the
// only mutable field and is advanced with a guarded increment so concurrent
// redemptions cannot slip past MaxUsage.
type PromoCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Reward    int64      `gorm:"not null" json:"reward"`
	MaxUsage  int        `gorm:"not null" json:"max_usage"`
	UsedCount int        `gorm:"not null;default:0" json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
}

// PromoRedemption forbids re-redemption: at most one row per (user, promo).
type PromoRedemption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_promo_redemption_user_promo;not null" json:"user_id"`
	PromoID   uint      `gorm:"uniqueIndex:idx_promo_redemption_user_promo;not null" json:"promo_id"`
	CreatedAt time.Time `json:"created_at"`
}
