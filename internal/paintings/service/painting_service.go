package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/logging"
	"github.com/stockhaus/stockhaus-backend/internal/paintings/domain"
	projectdomain "github.com/stockhaus/stockhaus-backend/internal/projects/domain"
	"github.com/stockhaus/stockhaus-backend/internal/storage/images"
)

type Repository interface {
	List(ctx context.Context, projectID string, opts domain.ListOptions) ([]domain.Painting, error)
	Insert(ctx context.Context, p *domain.Painting) (*domain.Painting, error)
	GetInProject(ctx context.Context, projectID, paintingID string) (*domain.Painting, error)
	Update(ctx context.Context, p *domain.Painting) (*domain.Painting, error)
	Delete(ctx context.Context, projectID, paintingID string) (string, error)
	Stats(ctx context.Context, projectID string) (*domain.Stats, error)
}

// ProjectOwnership resolves a project only for its owner.
type ProjectOwnership interface {
	GetOwned(ctx context.Context, userID, projectID string) (*projectdomain.Project, error)
}

type ImageStore interface {
	Store(ctx context.Context, ownerUserID, projectID, payload string) (*images.StoredImage, error)
	Remove(ctx context.Context, key string) error
}

// MetadataRefresher recomputes a project's cached item count. Its error is
// advisory and never fails a painting write.
type MetadataRefresher interface {
	Refresh(ctx context.Context, projectID string) error
}

// PaintingService handles painting business logic. Every operation first
// checks that the caller owns the parent project.
type PaintingService struct {
	repo     Repository
	projects ProjectOwnership
	images   ImageStore
	meta     MetadataRefresher
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewPaintingService(repo Repository, projects ProjectOwnership, images ImageStore, meta MetadataRefresher, log logrus.FieldLogger) *PaintingService {
	return &PaintingService{
		repo:     repo,
		projects: projects,
		images:   images,
		meta:     meta,
		log:      log,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (s *PaintingService) List(ctx context.Context, userID, projectID string, opts domain.ListOptions) ([]domain.Painting, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, projectID, opts)
}

// Create validates the fields, uploads the image and inserts the painting.
// A failed insert removes the freshly uploaded image.
func (s *PaintingService) Create(ctx context.Context, userID, projectID string, f domain.Fields, imageData string) (*domain.Painting, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(imageData) == "" {
		return nil, domain.ErrImageRequired
	}

	project, err := s.projects.GetOwned(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	img, err := s.images.Store(ctx, userID, project.ID, imageData)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p, err := s.repo.Insert(ctx, &domain.Painting{
		ProjectID:    project.ID,
		OwnerUserID:  userID,
		SerialNumber: f.SerialNumber,
		Name:         f.Name,
		Width:        f.Width,
		Height:       f.Height,
		Unit:         f.Unit,
		Quantity:     f.QuantityInt(),
		Rate:         f.Rate,
		ImageURL:     img.URL,
		ImageKey:     img.Key,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.discard(ctx, img.Key)
		return nil, err
	}

	_ = s.meta.Refresh(ctx, project.ID)
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"user_id": userID, "project_id": project.ID, "painting_id": p.ID}).Info("painting created")
	return p, nil
}

// Update merges the patch into the stored painting. When imageData is set the
// image is replaced and the previous object removed after the write succeeds.
func (s *PaintingService) Update(ctx context.Context, userID, projectID, paintingID string, patch domain.Patch, imageData *string) (*domain.Painting, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projects.GetOwned(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetInProject(ctx, project.ID, paintingID)
	if err != nil {
		return nil, err
	}

	oldKey := current.ImageKey
	var img *images.StoredImage
	if imageData != nil {
		img, err = s.images.Store(ctx, userID, project.ID, *imageData)
		if err != nil {
			return nil, err
		}
	}

	next := *current
	patch.Apply(&next)
	if img != nil {
		next.ImageURL = img.URL
		next.ImageKey = img.Key
	}
	next.UpdatedAt = s.now()

	p, err := s.repo.Update(ctx, &next)
	if err != nil {
		if img != nil {
			s.discard(ctx, img.Key)
		}
		return nil, err
	}

	_ = s.meta.Refresh(ctx, project.ID)
	if img != nil {
		s.discard(ctx, oldKey)
	}
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"user_id": userID, "project_id": project.ID, "painting_id": p.ID}).Info("painting updated")
	return p, nil
}

func (s *PaintingService) Delete(ctx context.Context, userID, projectID, paintingID string) error {
	project, err := s.projects.GetOwned(ctx, userID, projectID)
	if err != nil {
		return err
	}

	key, err := s.repo.Delete(ctx, project.ID, paintingID)
	if err != nil {
		return err
	}

	_ = s.meta.Refresh(ctx, project.ID)
	s.discard(ctx, key)
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"user_id": userID, "project_id": project.ID, "painting_id": paintingID}).Info("painting deleted")
	return nil
}

func (s *PaintingService) Stats(ctx context.Context, userID, projectID string) (*domain.Stats, error) {
	if _, err := s.projects.GetOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, projectID)
}

// discard removes an image object, logging failures. The object is left
// orphaned when removal fails.
func (s *PaintingService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Remove(ctx, key); err != nil {
		logging.FromContext(ctx, s.log).WithError(err).WithField("image_key", key).Warn("failed to remove image")
	}
}
