package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/constants"
)

var publicPages = map[string]bool{
	constants.HomePath:   true,
	constants.LoginPath:  true,
	constants.SignupPath: true,
}

// PageGuard redirects page requests by session state. Anonymous callers are sent
// to the login page unless the page is public; signed-in callers skip the
// login and signup pages.
func PageGuard(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		claims := tokens.VerifySession(c.Request.Context(), tokenFromRequest(c))

		if claims != nil {
			setClaims(c, claims)
			if path == constants.LoginPath || path == constants.SignupPath {
				c.Redirect(http.StatusFound, constants.LandingPath)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !publicPages[path] {
			c.Redirect(http.StatusFound, constants.LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
