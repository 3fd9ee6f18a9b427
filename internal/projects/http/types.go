package http

import (
	"context"

	"github.com/sirupsen/logrus"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/projects/domain"
)

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Create(ctx context.Context, userID string, in domain.CreateInput) (*domain.Project, error)
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)
	Select(ctx context.Context, userID, projectID string) (*domain.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc Service
	log logrus.FieldLogger
}

func New(svc Service, log logrus.FieldLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

type createReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type projectResp struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	CreatedAt    int64   `json:"createdAt"`
	LastAccessed int64   `json:"lastAccessed"`
	ItemCount    int     `json:"itemCount"`
}

func toProjectResp(p *domain.Project) projectResp {
	return projectResp{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CreatedAt:    httpapi.EpochMillis(p.CreatedAt),
		LastAccessed: httpapi.EpochMillis(p.LastAccessed),
		ItemCount:    p.ItemCount,
	}
}
