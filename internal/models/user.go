package models

import (
	"time"
)

type User struct {
	ID          string    `gorm:"type:varchar(36);primarykey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	DateCreated time.Time `gorm:"not null;index"`

	// Relations
	PendingTasks []PendingTask `gorm:"foreignKey:UserID"`
}

// PendingTaskIDs returns the ids of the user's pending tasks in insertion order.
// PendingTasks must have been preloaded.
func (u *User) PendingTaskIDs() []string {
	ids := make([]string, 0, len(u.PendingTasks))
	for _, p := range u.PendingTasks {
		ids = append(ids, p.TaskID)
	}
	return ids
}
