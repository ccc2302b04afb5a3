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

type TaskHandler struct {
	service *services.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
	}
}

// ListTasks returns the tasks matching where/sort/select/skip/limit, or their
// number when count=true
func (h *TaskHandler) ListTasks(c *gin.Context) {
	q, ok := parseListQuery(c, query.TaskFields)
	if !ok {
		return
	}

	if q.Count {
		count, err := h.service.CountTasks(c.Request.Context(), q)
		if err != nil {
			respondServiceError(c, h.logger, "count tasks", "Server error listing tasks", err)
			return
		}
		respondCount(c, count)
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, h.logger, "list tasks", "Server error listing tasks", err)
		return
	}

	data, err := dto.ProjectAll(dto.ToTaskDTOs(tasks), q.Select)
	if err != nil {
		respondServiceError(c, h.logger, "list tasks", "Server error listing tasks", err)
		return
	}
	apierrors.Respond(c, http.StatusOK, msgOK, data)
}

// CreateTask creates a task from a JSON or form body
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), req.ToInput())
	if err != nil {
		respondServiceError(c, h.logger, "create task", "Server error creating task", err)
		return
	}

	apierrors.Respond(c, http.StatusCreated, "Task created", dto.ToTaskDTO(*task))
}

// GetTask returns one task, projected by select
func (h *TaskHandler) GetTask(c *gin.Context) {
	projection, ok := parseSelect(c)
	if !ok {
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), middleware.GetID(c))
	if err != nil {
		respondServiceError(c, h.logger, "get task", "Server error fetching task", err)
		return
	}

	data, err := dto.Project(dto.ToTaskDTO(*task), projection)
	if err != nil {
		respondServiceError(c, h.logger, "get task", "Server error fetching task", err)
		return
	}
	apierrors.Respond(c, http.StatusOK, msgOK, data)
}

// ReplaceTask replaces every field of a task
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidRequestBody)
		return
	}

	task, err := h.service.ReplaceTask(c.Request.Context(), middleware.GetID(c), req.ToInput())
	if err != nil {
		respondServiceError(c, h.logger, "replace task", "Server error updating task", err)
		return
	}

	apierrors.Respond(c, http.StatusOK, msgOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), middleware.GetID(c)); err != nil {
		respondServiceError(c, h.logger, "delete task", "Server error deleting task", err)
		return
	}

	apierrors.Respond(c, http.StatusNoContent, "Task deleted", nil)
}
