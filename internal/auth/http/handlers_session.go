package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/auth"
	"github.com/stockhaus/stockhaus-backend/internal/auth/domain"
)

// Login exchanges a username and password for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.WriteError(c, h.log, domain.ErrMissingCredentials)
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		httpapi.WriteError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, loginResp{Token: sess.Token, Username: sess.Username})
}

// Me echoes the authenticated username.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, meResp{Username: auth.Username(c)})
}
