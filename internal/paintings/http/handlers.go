package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/auth"
	"github.com/stockhaus/stockhaus-backend/internal/paintings/domain"
)

func (h *Handler) list(c *gin.Context) {
	opts, err := domain.ParseListOptions(c.Query("sort"), c.Query("order"), c.Query("q"))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), auth.UserID(c), c.Param("id"), opts)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	out := make([]paintingResp, 0, len(items))
	for i := range items {
		out = append(out, toPaintingResp(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.UserID(c), c.Param("id"), req.fields(), req.ImageBase64)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toPaintingResp(p))
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.UserID(c), c.Param("id"), c.Param("pid"), req.patch(), req.ImageBase64)
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toPaintingResp(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), c.Param("id"), c.Param("pid")); err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) stats(c *gin.Context) {
	s, err := h.svc.Stats(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, statsResp{
		UniqueTitles: s.UniqueTitles,
		TotalItems:   s.TotalItems,
		TotalValue:   s.TotalValue,
	})
}
