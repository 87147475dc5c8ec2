package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-parser/internal/shared/auth"
	"resume-parser/internal/shared/server/respond"
)

const (
	userIDKey      = "userId"
	userEmailKey   = "userEmail"
	userNameKey    = "userName"
	userPictureKey = "userPicture"
	isGuestKey     = "isGuest"

	// GuestPrefix marks identities that came from the X-Guest-Id header.
	GuestPrefix = "guest:"
)

// Verifier validates bearer tokens.
type Verifier interface {
	Verify(token string) (auth.Claims, error)
}

// Auth requires a bearer JWT or a UUID X-Guest-Id header and stores the
// identity in context.
func Auth(v Verifier) gin.HandlerFunc {
	return identify(v, true)
}

// OptionalAuth records an identity when one is supplied but lets anonymous
// requests through. A malformed bearer token is still rejected.
func OptionalAuth(v Verifier) gin.HandlerFunc {
	return identify(v, false)
}

func identify(v Verifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if authHeader := strings.TrimSpace(c.GetHeader("Authorization")); authHeader != "" {
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" || v == nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(userIDKey, claims.Sub)
			setIfPresent(c, userEmailKey, claims.Email)
			setIfPresent(c, userNameKey, claims.Name)
			setIfPresent(c, userPictureKey, claims.Picture)
			c.Set(isGuestKey, false)
			c.Next()
			return
		}

		if guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id")); guestID != "" {
			if _, err := uuid.Parse(guestID); err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "X-Guest-Id must be a UUID",
					[]map[string]string{{"field": "X-Guest-Id", "issue": "invalid"}})
				return
			}
			c.Set(userIDKey, GuestPrefix+guestID)
			c.Set(isGuestKey, true)
			c.Next()
			return
		}

		if required {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Next()
	}
}

func setIfPresent(c *gin.Context, key, value string) {
	if value != "" {
		c.Set(key, value)
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	return stringFromContext(c, userEmailKey)
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	return stringFromContext(c, userNameKey)
}

// UserPictureFromContext fetches the user picture set by the auth middleware.
func UserPictureFromContext(c *gin.Context) string {
	return stringFromContext(c, userPictureKey)
}

// IsGuest reports whether the caller identified with X-Guest-Id only.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
