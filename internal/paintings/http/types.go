package http

import (
	"context"

	"github.com/sirupsen/logrus"

	httpapi "github.com/stockhaus/stockhaus-backend/internal/api/http"
	"github.com/stockhaus/stockhaus-backend/internal/paintings/domain"
)

type Service interface {
	List(ctx context.Context, userID, projectID string, opts domain.ListOptions) ([]domain.Painting, error)
	Create(ctx context.Context, userID, projectID string, f domain.Fields, imageData string) (*domain.Painting, error)
	Update(ctx context.Context, userID, projectID, paintingID string, patch domain.Patch, imageData *string) (*domain.Painting, error)
	Delete(ctx context.Context, userID, projectID, paintingID string) error
	Stats(ctx context.Context, userID, projectID string) (*domain.Stats, error)
}

type Handler struct {
	svc Service
	log logrus.FieldLogger
}

func New(svc Service, log logrus.FieldLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

type createReq struct {
	SerialNumber string   `json:"serialNumber"`
	Name         string   `json:"name"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Unit         string   `json:"unit"`
	Quantity     float64  `json:"quantity"`
	Rate         *float64 `json:"rate"`
	ImageBase64  string   `json:"imageBase64"`
}

func (r createReq) fields() domain.Fields {
	return domain.Fields{
		SerialNumber: r.SerialNumber,
		Name:         r.Name,
		Width:        r.Width,
		Height:       r.Height,
		Unit:         domain.Unit(r.Unit),
		Quantity:     r.Quantity,
		Rate:         r.Rate,
	}
}

// updateReq leaves absent fields nil so they keep their stored values.
type updateReq struct {
	SerialNumber *string  `json:"serialNumber"`
	Name         *string  `json:"name"`
	Width        *float64 `json:"width"`
	Height       *float64 `json:"height"`
	Unit         *string  `json:"unit"`
	Quantity     *float64 `json:"quantity"`
	Rate         *float64 `json:"rate"`
	ImageBase64  *string  `json:"imageBase64"`
}

func (r updateReq) patch() domain.Patch {
	p := domain.Patch{
		SerialNumber: r.SerialNumber,
		Name:         r.Name,
		Width:        r.Width,
		Height:       r.Height,
		Quantity:     r.Quantity,
		Rate:         r.Rate,
	}
	if r.Unit != nil {
		u := domain.Unit(*r.Unit)
		p.Unit = &u
	}
	return p
}

type paintingResp struct {
	ID           string   `json:"id"`
	SerialNumber string   `json:"serialNumber"`
	Name         string   `json:"name"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Unit         string   `json:"unit"`
	Quantity     int      `json:"quantity"`
	Rate         *float64 `json:"rate,omitempty"`
	ImageURL     string   `json:"imageUrl"`
	CreatedAt    int64    `json:"createdAt"`
	UpdatedAt    int64    `json:"updatedAt"`
}

func toPaintingResp(p *domain.Painting) paintingResp {
	return paintingResp{
		ID:           p.ID,
		SerialNumber: p.SerialNumber,
		Name:         p.Name,
		Width:        p.Width,
		Height:       p.Height,
		Unit:         string(p.Unit),
		Quantity:     p.Quantity,
		Rate:         p.Rate,
		ImageURL:     p.ImageURL,
		CreatedAt:    httpapi.EpochMillis(p.CreatedAt),
		UpdatedAt:    httpapi.EpochMillis(p.UpdatedAt),
	}
}

type statsResp struct {
	UniqueTitles int     `json:"uniqueTitles"`
	TotalItems   int64   `json:"totalItems"`
	TotalValue   float64 `json:"totalValue"`
}
