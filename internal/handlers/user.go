package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-assignment-api/internal/dto"
	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/middleware"
	"github.com/yukikurage/task-assignment-api/internal/query"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

type UserHandler struct {
	service *services.UserService
	logger  *logger.Logger
}

func NewUserHandler(service *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// ListUsers returns the users matching the list query, or their number when
// count=true
func (h *UserHandler) ListUsers(c *gin.Context) {
	q, ok := parseListQuery(c, query.UserFields)
	if !ok {
		return
	}

	if q.Count {
		count, err := h.service.CountUsers(c.Request.Context(), q)
		if err != nil {
			respondServiceError(c, h.logger, "count users", "Server error listing users", err)
			return
		}
		respondCount(c, count)
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, h.logger, "list users", "Server error listing users", err)
		return
	}

	data, err := dto.ProjectAll(dto.ToUserDTOs(users), q.Select)
	if err != nil {
		respondServiceError(c, h.logger, "list users", "Server error listing users", err)
		return
	}
	apierrors.Respond(c, http.StatusOK, msgOK, data)
}

// CreateUser creates a user. A taken email is disambiguated, not rejected.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateUser(c.Request.Context(), req.ToInput())
	if err != nil {
		respondServiceError(c, h.logger, "create user", "Server error creating user", err)
		return
	}

	message := "User created"
	if result.EmailDisambiguated {
		message = "User created (unique email)"
	}
	apierrors.Respond(c, http.StatusCreated, message, dto.ToUserDTO(*result.User))
}

// GetUser returns one user, projected by select
func (h *UserHandler) GetUser(c *gin.Context) {
	projection, ok := parseSelect(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), middleware.GetID(c))
	if err != nil {
		respondServiceError(c, h.logger, "get user", "Server error fetching user", err)
		return
	}

	data, err := dto.Project(dto.ToUserDTO(*user), projection)
	if err != nil {
		respondServiceError(c, h.logger, "get user", "Server error fetching user", err)
		return
	}
	apierrors.Respond(c, http.StatusOK, msgOK, data)
}

// ReplaceUser replaces name, email and pendingTasks
func (h *UserHandler) ReplaceUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return
	}

	user, err := h.service.ReplaceUser(c.Request.Context(), middleware.GetID(c), req.ToInput())
	if err != nil {
		respondServiceError(c, h.logger, "replace user", "Server error updating user", err)
		return
	}

	apierrors.Respond(c, http.StatusOK, msgOK, dto.ToUserDTO(*user))
}

// DeleteUser deletes a user and unassigns its tasks
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), middleware.GetID(c)); err != nil {
		respondServiceError(c, h.logger, "delete user", "Server error deleting user", err)
		return
	}

	apierrors.Respond(c, http.StatusNoContent, "User deleted", nil)
}
