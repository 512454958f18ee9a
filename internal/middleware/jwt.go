package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmiher/complaint-portal/internal/models"
	"github.com/dmiher/complaint-portal/internal/service"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
	"github.com/dmiher/complaint-portal/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// RequireFaculty rejects requests whose token does not carry the faculty
// role. Must run after JWT.
func RequireFaculty() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextUserKey)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := raw.(*models.JWTClaims)
		if !ok || claims.Role != models.RoleFaculty {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "faculty access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Claims returns the JWT claims stored in the context, when present.
func Claims(c *gin.Context) (*models.JWTClaims, bool) {
	raw, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := raw.(*models.JWTClaims)
	return claims, ok
}
