package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/apperr"
	"github.com/stockhaus/stockhaus-backend/internal/auth"
	"github.com/stockhaus/stockhaus-backend/internal/auth/domain"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// SessionAuthMiddleware validates the bearer session token and attaches the
// caller identity. Every token failure yields the same 401 body.
func SessionAuthMiddleware(a Authenticator, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidToken.Message})
			return
		}

		id, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperr.IsKind(err, apperr.KindUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidToken.Message})
				return
			}
			httpapi.WriteError(c, log, err)
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
