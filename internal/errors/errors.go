package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-facing messages shared by several handlers
const (
	MsgInvalidQuery       = "Invalid query parameters"
	MsgInvalidIDOrSelect  = "Invalid id or select"
	MsgInvalidID          = "Invalid id"
	MsgInvalidRequestBody = "Invalid request body"
	MsgNotFound           = "Resource not found"
	MsgInternalError      = "Internal server error"
)

// Envelope is the body of every API response
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Respond sends an envelope. A 204 carries no body.
func Respond(c *gin.Context, statusCode int, message string, data any) {
	if statusCode == http.StatusNoContent {
		c.Status(statusCode)
		return
	}
	c.JSON(statusCode, Envelope{Message: message, Data: data})
}

// RespondWithError sends an error envelope with empty data and aborts the chain
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{Message: message, Data: gin.H{}})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = MsgInvalidRequestBody
	}
	RespondWithError(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = MsgNotFound
	}
	RespondWithError(c, http.StatusNotFound, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = MsgInternalError
	}
	RespondWithError(c, http.StatusInternalServerError, message)
}
