package services

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"realestate-crm.com/realestate-crm/internal/constants"
	"realestate-crm.com/realestate-crm/internal/queue"
)

// DigestRunner runs dashboard digests on a single background worker. A
// trigger arriving while a run is already queued is dropped.
type DigestRunner struct {
	queue     chan struct{}
	wg        sync.WaitGroup
	dashboard *DashboardService
	report    func(Digest)
	tokens    queue.TokenManager
}

func NewDigestRunner(dashboard *DashboardService, report func(Digest)) *DigestRunner {
	if report == nil {
		report = logDigest
	}
	r := &DigestRunner{
		queue:     make(chan struct{}, 1),
		dashboard: dashboard,
		report:    report,
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// UseTokens makes every run hold a token of tm, so that processes sharing
// the token store do not report the same digest twice.
func (r *DigestRunner) UseTokens(tm queue.TokenManager) {
	r.tokens = tm
}

// Trigger queues a digest run and reports whether it was accepted.
func (r *DigestRunner) Trigger() bool {
	select {
	case r.queue <- struct{}{}:
		return true
	default:
		log.Warn("digest: run already queued, skipping")
		return false
	}
}

func (r *DigestRunner) worker() {
	defer r.wg.Done()

	log.Debug("digest worker started")
	for range r.queue {
		r.runOnce(context.Background())
	}
	log.Debug("digest worker stopped")
}

func (r *DigestRunner) runOnce(ctx context.Context) {
	if r.tokens != nil {
		if err := r.tokens.AcquireToken(ctx); err != nil {
			if errors.Is(err, queue.ErrNoTokenAvailable) {
				log.Info("digest: another instance holds the run token, skipping")
				return
			}
			log.WithError(err).Error("digest: failed to acquire run token")
			return
		}
		defer func() {
			if err := r.tokens.ReleaseToken(ctx); err != nil {
				log.WithError(err).Error("digest: failed to release run token")
			}
		}()
	}

	d, err := r.dashboard.Digest(ctx)
	if err != nil {
		log.WithError(err).Error("digest: failed to build")
		return
	}
	r.report(d)
}

func logDigest(d Digest) {
	log.WithFields(log.Fields{
		"day":           d.Stats.Day.Format(constants.DateLayout),
		"properties":    d.Stats.PropertyCount,
		"available":     d.Stats.AvailableProperties,
		"clients":       d.Stats.ClientCount,
		"pending_tasks": d.Stats.PendingTaskCount,
		"overdue_tasks": d.Stats.OverdueTasks,
		"collaborators": d.Stats.CollaboratorCount,
	}).Info("crm.digest")
	for _, t := range d.Overdue {
		assignee := "unassigned"
		if t.AssignedTo != nil {
			assignee = t.AssignedTo.Name
		}
		log.WithFields(log.Fields{
			"task_id":  t.ID,
			"title":    t.Title,
			"due_date": t.DueDate.Format(constants.DateLayout),
			"priority": t.Priority,
			"assignee": assignee,
		}).Warn("crm.digest.overdue")
	}
}

// Shutdown stops accepting triggers and waits for the worker to drain.
func (r *DigestRunner) Shutdown(ctx context.Context) {
	close(r.queue)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("digest runner shut down cleanly")
	case <-ctx.Done():
		log.Warn("digest runner shutdown timed out")
	}
}
