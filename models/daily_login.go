package models

import "time"

// DailyLogin records one claimed daily-login reward. A new row is appended
// per claim so the history is kept; the row with the latest LoginDate is the
// current streak state.
type DailyLogin struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	LoginDate     time.Time `gorm:"index;not null" json:"login_date"`
	Streak        int       `gorm:"not null;default:1" json:"streak"`
	RewardClaimed bool      `gorm:"not null;default:false" json:"reward_claimed"`
	CreatedAt     time.Time `json:"created_at"`
}
