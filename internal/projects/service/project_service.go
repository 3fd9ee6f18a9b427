package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/logging"
	"github.com/stockhaus/stockhaus-backend/internal/projects/domain"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Create(ctx context.Context, userID string, in domain.CreateInput, now time.Time) (*domain.Project, error)
	GetOwned(ctx context.Context, userID, projectID string) (*domain.Project, error)
	Touch(ctx context.Context, userID, projectID string, now time.Time) (*domain.Project, error)
	Delete(ctx context.Context, userID, projectID string) ([]string, error)
}

// ImageRemover deletes stored image objects by key.
type ImageRemover interface {
	Remove(ctx context.Context, key string) error
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo   Repository
	images ImageRemover
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(repo Repository, images ImageRemover, log logrus.FieldLogger) *ProjectService {
	return &ProjectService{
		repo:   repo,
		images: images,
		log:    log,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.repo.List(ctx, userID)
}

func (s *ProjectService) Create(ctx context.Context, userID string, in domain.CreateInput) (*domain.Project, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	p, err := s.repo.Create(ctx, userID, in, s.now())
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"user_id": userID, "project_id": p.ID}).Info("project created")
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	return s.repo.GetOwned(ctx, userID, projectID)
}

// Select records that the user opened the project.
func (s *ProjectService) Select(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	return s.repo.Touch(ctx, userID, projectID, s.now())
}

// Delete removes the project with its paintings, then their images. Image
// removal failures are logged and leave orphaned objects behind.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	keys, err := s.repo.Delete(ctx, userID, projectID)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"user_id": userID, "project_id": projectID})
	for _, key := range keys {
		if err := s.images.Remove(ctx, key); err != nil {
			log.WithError(err).WithField("image_key", key).Warn("failed to remove image of deleted project")
		}
	}
	log.WithField("paintings", len(keys)).Info("project deleted")
	return nil
}
