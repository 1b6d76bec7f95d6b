package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/services"
	"github.com/yeremiapane/attendance-portal/utils"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*utils.CustomClaims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and
// stores the caller's id and role on the context.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, errors.New("authorization header must be: Bearer <token>"))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(tokenString))
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// CallerFromContext returns the identity AuthMiddleware attached to the request.
func CallerFromContext(c *gin.Context) (services.Caller, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return services.Caller{}, false
	}
	userID, ok := id.(uint)
	if !ok || userID == 0 {
		return services.Caller{}, false
	}
	return services.Caller{ID: userID, Role: c.GetString(ContextRole)}, true
}
