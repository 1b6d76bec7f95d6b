package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/utils"
)

// RequireRoles lets the request through only when the caller's role is listed.
// It must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	denied := fmt.Errorf("%s access required", strings.Join(roles, " or "))

	return func(c *gin.Context) {
		caller, ok := CallerFromContext(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			return
		}
		if !allowed[caller.Role] {
			utils.AbortWithError(c, http.StatusForbidden, denied)
			return
		}
		c.Next()
	}
}
