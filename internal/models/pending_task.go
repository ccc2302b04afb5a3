package models

import "time"

// PendingTask is one entry of a user's pendingTasks list. The autoincrement ID
// keeps insertion order.
type PendingTask struct {
	ID        uint64    `gorm:"primarykey"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_pending_user_task"`
	TaskID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_pending_user_task;index"`
	CreatedAt time.Time
}
