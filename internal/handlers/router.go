package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
	"github.com/yukikurage/task-assignment-api/internal/middleware"
)

// RegisterRoutes mounts /health and the /api resources on r
func RegisterRoutes(r gin.IRouter, tasks *TaskHandler, users *UserHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Assignment API is running",
		})
	})

	getID := middleware.RequireValidID(apierrors.MsgInvalidIDOrSelect)
	requireID := middleware.RequireValidID(apierrors.MsgInvalidID)

	api := r.Group("/api")
	{
		taskRoutes := api.Group("/tasks")
		{
			taskRoutes.GET("", tasks.ListTasks)
			taskRoutes.POST("", tasks.CreateTask)
			taskRoutes.GET("/:id", getID, tasks.GetTask)
			taskRoutes.PUT("/:id", requireID, tasks.ReplaceTask)
			taskRoutes.DELETE("/:id", requireID, tasks.DeleteTask)
		}

		userRoutes := api.Group("/users")
		{
			userRoutes.GET("", users.ListUsers)
			userRoutes.POST("", users.CreateUser)
			userRoutes.GET("/:id", getID, users.GetUser)
			userRoutes.PUT("/:id", requireID, users.ReplaceUser)
			userRoutes.DELETE("/:id", requireID, users.DeleteUser)
		}
	}
}
