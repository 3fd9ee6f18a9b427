package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/auth"
	"github.com/stockhaus/stockhaus-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	out := make([]projectResp, 0, len(items))
	for i := range items {
		out = append(out, toProjectResp(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.UserID(c), domain.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResp(p))
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResp(p))
}

func (h *Handler) selectProject(c *gin.Context) {
	p, err := h.svc.Select(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResp(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
