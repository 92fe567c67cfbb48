package models

import (
	"time"

	"gorm.io/gorm"
)

// Balance holds the mutable economy state of one account. It is created
// together with the User row and shares its lifecycle. Balance and Energy
// must never go negative; TotalTaps only grows.
type Balance struct {
	UserID          uint      `gorm:"primaryKey" json:"user_id"`
	Balance         int64     `gorm:"not null;default:0" json:"balance"`
	HourlyIncome    int64     `gorm:"not null;default:0" json:"hourly_income"`
	TotalTaps       int64     `gorm:"not null;default:0" json:"total_taps"`
	Energy          int       `gorm:"not null;default:1000" json:"energy"`
	MaxEnergy       int       `gorm:"not null;default:1000" json:"max_energy"`
	EnergyUpdatedAt time.Time `gorm:"not null" json:"energy_updated_at"`
	Level           int       `gorm:"not null;default:1" json:"level"`
	XP              int64     `gorm:"column:xp;not null;default:0" json:"xp"`
}

// BeforeCreate seeds the regeneration anchor so fresh accounts do not appear
// to have been idle since the zero time.
func (b *Balance) BeforeCreate(tx *gorm.DB) error {
	if b.EnergyUpdatedAt.IsZero() {
		b.EnergyUpdatedAt = time.Now()
	}
	return nil
}
