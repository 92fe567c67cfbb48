package models

import "time"

// Boost effect codes. Only DoubleTap changes tap yield today; the rest are
// catalog entries whose grants expire without a gameplay effect.
const (
	BoostDoubleTap       = "DOUBLE_TAP"
	BoostUnlimitedEnergy = "UNLIMITED_ENERGY"
	BoostDoubleHourly    = "DOUBLE_HOURLY"
	BoostAutoTap         = "AUTO_TAP"
)

// Boost is a purchasable time-bounded multiplier in the catalog. Rows are
// immutable after seeding.
type Boost struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Code            string `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Name            string `gorm:"size:64;not null" json:"name"`
	Description     string `gorm:"size:255;not null" json:"description"`
	DurationSeconds int    `gorm:"not null" json:"duration_seconds"`
	Price           int64  `gorm:"not null" json:"price"`
}

// BoostGrant links an account to a purchased boost. A grant is in effect iff
// IsActive and ExpiresAt is in the future; expired grants are kept as history.
type BoostGrant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	BoostID   uint      `gorm:"not null" json:"boost_id"`
	StartedAt time.Time `gorm:"not null" json:"started_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
}
