package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
)

var errNotAuthenticated = apierrors.Unauthorized("missing or invalid session token", "Authentication required")

// RequireAuth checks if the request carries a valid session token
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := tokens.VerifySession(c.Request.Context(), tokenFromRequest(c))
		if claims == nil {
			apierrors.Respond(c, errNotAuthenticated)
			return
		}

		// Store user ID in context for easy access in handlers
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the session when present and lets anonymous requests through
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := tokens.VerifySession(c.Request.Context(), tokenFromRequest(c)); claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) *auth.Claims {
	v, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.UserID())
	c.Set(constants.ContextKeyClaims, claims)
}

// tokenFromRequest prefers the Authorization header over the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
