package dto

import (
	"github.com/yukikurage/task-assignment-api/internal/models"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PendingTasks []string  `json:"pendingTasks"`
	DateCreated  Timestamp `json:"dateCreated"`
}

// UserRequest is the body of user create and replace requests
type UserRequest struct {
	Name         string   `json:"name" form:"name"`
	Email        string   `json:"email" form:"email"`
	PendingTasks []string `json:"pendingTasks" form:"pendingTasks"`
}

// ToInput converts the request into service input
func (r UserRequest) ToInput() services.UserInput {
	return services.UserInput{
		Name:         r.Name,
		Email:        r.Email,
		PendingTasks: r.PendingTasks,
	}
}

// ToUserDTO converts a User model to UserDTO. PendingTasks must be preloaded.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PendingTasks: user.PendingTaskIDs(),
		DateCreated:  NewTimestamp(user.DateCreated),
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, ToUserDTO(user))
	}
	return dtos
}
