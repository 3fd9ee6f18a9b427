package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/logging"
	"github.com/stockhaus/stockhaus-backend/internal/metrics"
)

type MetadataStore interface {
	RefreshMetadata(ctx context.Context, projectID string) error
	ReconcileItemCounts(ctx context.Context) (int64, error)
}

// MetadataRefresher keeps a project's cached item count and last-accessed
// time in step with its paintings.
type MetadataRefresher struct {
	store MetadataStore
	log   logrus.FieldLogger
}

func NewMetadataRefresher(store MetadataStore, log logrus.FieldLogger) *MetadataRefresher {
	return &MetadataRefresher{store: store, log: log}
}

// Refresh recomputes the project's item count and bumps last_accessed.
// Failures are logged and counted; callers treat the error as advisory.
func (r *MetadataRefresher) Refresh(ctx context.Context, projectID string) error {
	if err := r.store.RefreshMetadata(ctx, projectID); err != nil {
		metrics.RecordMetadataRefreshFailure()
		logging.FromContext(ctx, r.log).WithError(err).WithField("project_id", projectID).Warn("project metadata refresh failed")
		return err
	}
	return nil
}

// Reconcile fixes item counts that drifted after failed refreshes.
func (r *MetadataRefresher) Reconcile(ctx context.Context) (int64, error) {
	n, err := r.store.ReconcileItemCounts(ctx)
	if err != nil {
		return 0, err
	}
	metrics.RecordReconciled(n)
	if n > 0 {
		r.log.WithField("projects", n).Info("reconciled project item counts")
	}
	return n, nil
}
