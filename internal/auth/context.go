package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stockhaus/stockhaus-backend/internal/auth/domain"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// SetIdentity stores the authenticated caller on the gin context.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(CtxUserID, id.UserID)
	c.Set(CtxUsername, id.Username)
}

// UserID returns the caller's user id, set by the session middleware.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

func Username(c *gin.Context) string {
	return c.GetString(CtxUsername)
}
