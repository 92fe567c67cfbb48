package models

import "time"

// Article is a catalog entry with sanitized HTML content. Reading one to the
// end earns its reward once per account.
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:128;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Reward   int64  `gorm:"not null" json:"reward"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// ArticleCompletion marks an article as read by an account. Existence of the
// row is the whole state machine; there is nothing richer to track.
type ArticleCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_article_completion_user_article;not null" json:"user_id"`
	ArticleID uint      `gorm:"uniqueIndex:idx_article_completion_user_article;not null" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
