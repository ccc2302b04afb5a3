package models

import (
	"time"
)

// UnassignedName is the assignedUserName of a task nobody holds.
const UnassignedName = "unassigned"

type Task struct {
	ID               string    `gorm:"type:varchar(36);primarykey"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Description      string    `gorm:"type:text"`
	Deadline         time.Time `gorm:"not null"`
	Completed        bool      `gorm:"not null;default:false"`
	AssignedUser     string    `gorm:"type:varchar(36);not null;default:'';index"`
	AssignedUserName string    `gorm:"type:varchar(255);not null;default:'unassigned'"`
	DateCreated      time.Time `gorm:"not null;index"`
}

// IsAssigned reports whether the task currently points at a user.
func (t *Task) IsAssigned() bool {
	return t.AssignedUser != ""
}
