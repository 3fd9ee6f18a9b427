// Package jobs runs scheduled maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reconciler corrects cached project item counts.
type Reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// Scheduler runs the reconcile task on a cron schedule with a seconds field.
type Scheduler struct {
	cron     *cron.Cron
	rec      Reconciler
	log      logrus.FieldLogger
	timeout  time.Duration
	schedule string
}

func NewScheduler(rec Reconciler, schedule string, log logrus.FieldLogger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		rec:      rec,
		log:      log,
		timeout:  5 * time.Minute,
		schedule: schedule,
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule reconcile job %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("reconcile scheduler started")
}

// Stop prevents new runs and waits for a running one until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("reconcile job still running at shutdown")
	}
}

// RunOnce reconciles item counts now.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.rec.Reconcile(ctx)
	if err != nil {
		s.log.WithError(err).Error("reconcile job failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"projects":   n,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("reconcile job completed")
}
