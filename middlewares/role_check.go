package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frotaweb/fleet-app/utils"
)

// RequireRole gates a route group behind a role. Admin always passes.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		switch role {
		case "admin":
			if userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("admin access required"))
				c.Abort()
				return
			}
		case "staff":
			if userRole != "staff" && userRole != "admin" {
				utils.RespondError(c, http.StatusForbidden, fmt.Errorf("staff access required"))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
