package handlers

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/middleware"
	"github.com/yukikurage/trip-planner-api/internal/validation"
)

var errNotAuthenticated = apierrors.Unauthorized("no user in context", "Authentication required")

// bindJSON decodes the body into req and writes the error envelope on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.Respond(c, validation.BindingError(err))
		return false
	}
	return true
}

// currentUser returns the authenticated user ID or writes 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Respond(c, errNotAuthenticated)
		return "", false
	}
	return userID, true
}
