package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/service"
	"bugdesk.app/tracker/internal/store"
	"bugdesk.app/tracker/internal/workflow"
)

// respondError maps domain error kinds to HTTP statuses. Anything unmapped is
// a 500 with a generic message; the real error goes to the log, not the wire.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "issue was modified concurrently, retry"})
	case errors.Is(err, workflow.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not permitted"})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status transition"})
	case errors.Is(err, service.ErrInvalidAssignee):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSameStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCommentImmutable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
