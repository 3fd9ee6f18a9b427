package http

import "github.com/gin-gonic/gin"

// Register mounts /login publicly and /me behind requireSession.
func (h *Handler) Register(rg *gin.RouterGroup, requireSession gin.HandlerFunc) {
	rg.POST("/login", h.Login)
	rg.GET("/me", requireSession, h.Me)
}
