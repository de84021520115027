package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nived-gurung/trekbooking/internal/domain"
)

// CurrentUserFunc resolves the authenticated user for a request. Session
// mechanics live outside this service; cmd/app wires an implementation.
// Returning ErrInvalidCredentials (or a nil user) means anonymous.
type CurrentUserFunc func(c *gin.Context) (*domain.User, error)

const userKey = "currentUser"

func RequireUser(current CurrentUserFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := current(c)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// writeError maps domain errors onto HTTP statuses. Unknown errors come
// back as a generic 500 so storage details never leak to callers.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrInvalidPartySize), errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
