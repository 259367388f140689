package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/starkbrilliance/smartharvest/internal/constants"
	apierrors "github.com/starkbrilliance/smartharvest/internal/errors"
	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/starkbrilliance/smartharvest/internal/services"
)

// RequireAuth validates the bearer session token on every request. The
// lookup is always fresh; nothing is cached between calls.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "No session token provided")
			c.Abort()
			return
		}

		session, err := authService.ValidateToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySession, session)
		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// GetSession retrieves the validated session from context
func GetSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil, false
	}

	session, ok := value.(*models.Session)
	return session, ok
}
