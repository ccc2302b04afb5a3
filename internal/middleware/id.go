package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
)

const idKey = "resource_id"

// RequireValidID rejects requests whose :id path parameter is not a
// well-formed id, answering 400 with message.
func RequireValidID(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil {
			apierrors.BadRequest(c, message)
			return
		}

		c.Set(idKey, id)
		c.Next()
	}
}

// GetID returns the :id validated by RequireValidID, falling back to the raw
// path parameter.
func GetID(c *gin.Context) string {
	if id := c.GetString(idKey); id != "" {
		return id
	}
	return c.Param("id")
}
