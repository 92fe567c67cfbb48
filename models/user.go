package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a player account. Identity comes from the Telegram login
// widget; no passwords are stored. ReferrerID is set once at creation and
// never mutated afterwards.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TelegramID  int64     `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Username    string    `gorm:"size:64" json:"username"`
	FirstName   string    `gorm:"size:64" json:"first_name"`
	Language    string    `gorm:"size:8;default:uz" json:"language"`
	ReferrerID  *uint     `json:"referrer_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.LastLoginAt.IsZero() {
		u.LastLoginAt = now
	}
	return nil
}
