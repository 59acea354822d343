package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/common/logger"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth resolves the Authorization bearer token to a user via the
// session store and attaches the user to the request context. Token issuance
// happens outside this service.
func RequireAuth(sessions store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := sessions.GetUserByToken(c.Request.Context(), token, time.Now())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userContextKey, user)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUser returns the authenticated user, or nil outside RequireAuth.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetActor returns the authenticated caller as a state-machine actor.
func GetActor(ctx context.Context) model.Actor {
	if user := GetUser(ctx); user != nil {
		return model.Actor{UserID: user.ID, Role: user.Role}
	}
	return model.Actor{}
}
