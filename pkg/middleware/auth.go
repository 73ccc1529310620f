package middleware

import (
	"net/http"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAdmin rejects the request with a generic 401 unless it carries a
// valid admin bearer token. The reason is logged, never returned.
func RequireAdmin(issuer *auth.TokenIssuer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c)
			return
		}
		claims, err := issuer.VerifyAdmin(token)
		if err != nil {
			logger.Warn("Admin credential rejected",
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.Error(err))
			deny(c)
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Authentication required or insufficient permissions",
		"code":  "UNAUTHORIZED",
	})
}
