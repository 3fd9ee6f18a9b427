package http

import "github.com/gin-gonic/gin"

// RegisterProjectsSubroutes mounts painting routes under an existing
// /projects group, sharing its :id parameter.
func (h *Handler) RegisterProjectsSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/paintings", h.list)
	rg.POST("/:id/paintings", h.create)
	rg.PUT("/:id/paintings/:pid", h.update)
	rg.DELETE("/:id/paintings/:pid", h.delete)
	rg.GET("/:id/stats", h.stats)
}
