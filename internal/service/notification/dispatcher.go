// Package notification hands status changes to the delivery outbox and serves
// the in-app notification inbox.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

//go:generate moq -out job_queue_mock_test.go -pkg notification . jobQueue
//go:generate moq -out waker_mock_test.go -pkg notification . waker
//go:generate moq -out notification_repo_mock_test.go -pkg notification . notificationRepo

type jobQueue interface {
	Enqueue(ctx context.Context, jobs ...*domain.DeliveryJob) error
}

// waker nudges the delivery worker so queued jobs go out before the next poll.
type waker interface {
	Wake(ctx context.Context) error
}

// Dispatcher queues one delivery job per channel for every status change.
type Dispatcher struct {
	jobs jobQueue
	wake waker
	log  *slog.Logger
}

// NewDispatcher creates a dispatcher. wake may be nil when no wake-up channel
// is configured; the worker then picks jobs up on its next poll.
func NewDispatcher(log *slog.Logger, jobs jobQueue, wake waker) *Dispatcher {
	return &Dispatcher{
		jobs: jobs,
		wake: wake,
		log:  log.With("service", "dispatcher"),
	}
}

// channels lists where every status change is delivered.
var channels = []domain.DeliveryChannel{
	domain.DeliveryChannelInApp,
	domain.DeliveryChannelEmail,
}

// NotifyStatusChange enqueues the in-app and email deliveries for change.
// A failed wake-up is only logged since the jobs are already stored.
func (d *Dispatcher) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	jobs := make([]*domain.DeliveryJob, 0, len(channels))
	for _, ch := range channels {
		jobs = append(jobs, &domain.DeliveryJob{Channel: ch, Payload: change})
	}

	if err := d.jobs.Enqueue(ctx, jobs...); err != nil {
		return fmt.Errorf("enqueue status change: %w", err)
	}

	d.log.DebugContext(ctx, "status change queued",
		slog.String("kind", change.Kind.String()),
		slog.Int64("report_id", change.ReportID),
		slog.Int("jobs", len(jobs)),
	)

	if d.wake != nil {
		if err := d.wake.Wake(ctx); err != nil {
			d.log.WarnContext(ctx, "delivery wake-up failed", slog.String("error", err.Error()))
		}
	}
	return nil
}
