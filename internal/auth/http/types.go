package http

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/auth/domain"
)

type Service interface {
	Login(ctx context.Context, username, password, clientIP string) (*domain.Session, error)
}

type Handler struct {
	authService Service
	log         logrus.FieldLogger
}

func New(authService Service, log logrus.FieldLogger) *Handler {
	return &Handler{
		authService: authService,
		log:         log,
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type meResp struct {
	Username string `json:"username"`
}
