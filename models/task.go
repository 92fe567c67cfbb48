package models

import "time"

// Task types.
const (
	TaskTypeDaily   = "daily"
	TaskTypeOnce    = "once"
	TaskTypeSpecial = "special"
)

// Task progress states. Done is terminal.
const (
	TaskStatusNew        = "new"
	TaskStatusInProgress = "in_progress"
	TaskStatusChecking   = "checking"
	TaskStatusDone       = "done"
)

// Task is a catalog entry describing one reward-earning assignment. Link, if
// set, is opened by the client before starting; the engine never fetches it.
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Type        string `gorm:"size:16;not null" json:"type"`
	Title       string `gorm:"size:128;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Reward      int64  `gorm:"not null" json:"reward"`
	Link        string `gorm:"size:512" json:"link,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// TaskProgress tracks one account's progress on one task. At most one row per
// (user, task) pair, created lazily on first interaction.
type TaskProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_task_progress_user_task;not null" json:"user_id"`
	TaskID    uint      `gorm:"uniqueIndex:idx_task_progress_user_task;not null" json:"task_id"`
	Status    string    `gorm:"size:16;not null;default:new" json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}
