package models

import "time"

// Transaction types. One per balance-affecting event.
const (
	TxTap        = "tap"
	TxTask       = "task"
	TxArticle    = "article"
	TxPromo      = "promo"
	TxDailyLogin = "daily_login"
	TxReferral   = "referral"
	TxBoostBuy   = "boost_buy"
)

// Transaction is an append-only ledger row. Rows are never mutated or
// deleted; the ledger is the source of truth for balance auditability.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Meta      string    `gorm:"size:512" json:"meta,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
