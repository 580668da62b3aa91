package middleware

import (
	"errors"
	"net/http"

	"github.com/EnzoPetry/Dice/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a middleware that validates the session cookie.
func AuthMiddleware(validator *auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := validator.Validate(c.Request.Context(), c.Request.Header)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidSession) || errors.Is(err, auth.ErrSessionExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			}
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Set("userID", session.UserID)

		c.Next()
	}
}

// GetSession extracts the validated session from the Gin context.
func GetSession(c *gin.Context) (*auth.Session, bool) {
	value, exists := c.Get("session")
	if !exists {
		return nil, false
	}
	session, ok := value.(*auth.Session)
	return session, ok
}

// GetUserID extracts the user ID from the Gin context.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	return userID.(string), true
}
