package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
	"github.com/yukikurage/task-assignment-api/internal/logger"
	"github.com/yukikurage/task-assignment-api/internal/query"
	"github.com/yukikurage/task-assignment-api/internal/services"
)

const msgOK = "OK"

// respondServiceError maps service errors to responses. Errors of no known
// kind are logged and answered with the generic fallback message.
func respondServiceError(c *gin.Context, log *logger.Logger, op, fallback string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		log.Error("request failed", "operation", op, "error", err)
		_ = c.Error(err)
		apierrors.InternalError(c, fallback)
	}
}

// parseListQuery parses where, sort, select, skip, limit and count
func parseListQuery(c *gin.Context, fields query.FieldSet) (query.ListQuery, bool) {
	q, err := query.Parse(c.Request.URL.Query(), fields)
	if err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidQuery)
		return query.ListQuery{}, false
	}
	return q, true
}

// parseSelect parses the select parameter of a get-by-id request
func parseSelect(c *gin.Context) (query.Projection, bool) {
	raw, ok := c.GetQuery("select")
	if !ok {
		return query.Projection{}, true
	}
	p, err := query.ParseSelect(raw)
	if err != nil {
		apierrors.BadRequest(c, apierrors.MsgInvalidIDOrSelect)
		return query.Projection{}, false
	}
	return p, true
}

// respondCount answers a count=true list request
func respondCount(c *gin.Context, count int64) {
	apierrors.Respond(c, http.StatusOK, msgOK, count)
}
