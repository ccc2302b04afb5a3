package dto

import (
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Deadline         Timestamp `json:"deadline"`
	Completed        bool      `json:"completed"`
	AssignedUser     string    `json:"assignedUser"`
	AssignedUserName string    `json:"assignedUserName"`
	DateCreated      Timestamp `json:"dateCreated"`
}

// TaskRequest is the body of task create and replace requests, sent as JSON
// or as a urlencoded form. assignedUserName is accepted and ignored.
type TaskRequest struct {
	Name             string    `json:"name" form:"name"`
	Description      string    `json:"description" form:"description"`
	Deadline         Timestamp `json:"deadline" form:"deadline"`
	Completed        bool      `json:"completed" form:"completed"`
	AssignedUser     string    `json:"assignedUser" form:"assignedUser"`
	AssignedUserName string    `json:"assignedUserName" form:"assignedUserName"`
}

// ToInput converts the request into service input
func (r TaskRequest) ToInput() services.TaskInput {
	return services.TaskInput{
		Name:         r.Name,
		Description:  r.Description,
		Deadline:     r.Deadline.Ptr(),
		Completed:    r.Completed,
		AssignedUser: r.AssignedUser,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID,
		Name:             task.Name,
		Description:      task.Description,
		Deadline:         NewTimestamp(task.Deadline),
		Completed:        task.Completed,
		AssignedUser:     task.AssignedUser,
		AssignedUserName: task.AssignedUserName,
		DateCreated:      NewTimestamp(task.DateCreated),
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, ToTaskDTO(task))
	}
	return dtos
}
