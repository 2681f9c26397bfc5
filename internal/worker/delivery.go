// Package worker runs background jobs that live alongside the HTTP server.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/config"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/service/notification"
)

//go:generate moq -out job_store_mock_test.go -pkg worker . jobStore
//go:generate moq -out notification_store_mock_test.go -pkg worker . notificationStore
//go:generate moq -out user_store_mock_test.go -pkg worker . userStore
//go:generate moq -out mailer_mock_test.go -pkg worker . mailer

// claimLease is how long a claimed job stays invisible to other workers.
const claimLease = 2 * time.Minute

type jobStore interface {
	Claim(ctx context.Context, limit int, lease time.Duration) ([]*domain.DeliveryJob, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastErr string) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error
}

type notificationStore interface {
	Create(ctx context.Context, n *domain.Notification, jobID *uuid.UUID) error
}

type userStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type mailer interface {
	SendStatusEmail(ctx context.Context, to domain.User, change domain.StatusChange) error
}

// Delivery drains the outbox: it claims pending jobs and hands each one to
// its channel handler, recording success, retry or failure.
type Delivery struct {
	log           *slog.Logger
	cfg           config.DeliveryConfig
	jobs          jobStore
	notifications notificationStore
	users         userStore
	mail          mailer
	wake          <-chan struct{}
	now           func() time.Time
}

// NewDelivery creates a delivery worker.
func NewDelivery(
	log *slog.Logger,
	cfg config.DeliveryConfig,
	jobs jobStore,
	notifications notificationStore,
	users userStore,
	mail mailer,
) *Delivery {
	return &Delivery{
		log:           log.With("worker", "delivery"),
		cfg:           cfg,
		jobs:          jobs,
		notifications: notifications,
		users:         users,
		mail:          mail,
		now:           time.Now,
	}
}

// WithWake sets a channel whose signals trigger an immediate poll.
func (d *Delivery) WithWake(ch <-chan struct{}) *Delivery {
	d.wake = ch
	return d
}

// Run polls until ctx is canceled. It always returns nil on shutdown.
func (d *Delivery) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.log.Info("delivery worker started",
		slog.Duration("poll_interval", d.cfg.PollInterval),
		slog.Int("batch_size", d.cfg.BatchSize),
		slog.Int("max_attempts", d.cfg.MaxAttempts),
	)

	wake := d.wake
	for {
		d.drain(ctx)

		select {
		case <-ctx.Done():
			d.log.Info("delivery worker stopped")
			return nil
		case <-ticker.C:
		case _, ok := <-wake:
			if !ok {
				wake = nil
			}
		}
	}
}

// drain processes full batches until the queue looks empty.
func (d *Delivery) drain(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("delivery batch panicked", slog.Any("panic", r))
		}
	}()

	for ctx.Err() == nil {
		n, err := d.RunOnce(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				d.log.Error("claim delivery jobs", slog.String("error", err.Error()))
			}
			return
		}
		if n < d.cfg.BatchSize {
			return
		}
	}
}

// RunOnce claims one batch and processes it. It returns the number of jobs
// claimed.
func (d *Delivery) RunOnce(ctx context.Context) (int, error) {
	jobs, err := d.jobs.Claim(ctx, d.cfg.BatchSize, claimLease)
	if err != nil {
		return 0, fmt.Errorf("worker.RunOnce: %w", err)
	}

	for _, job := range jobs {
		d.settle(ctx, job, d.deliver(ctx, job))
	}
	return len(jobs), nil
}

func (d *Delivery) deliver(ctx context.Context, job *domain.DeliveryJob) error {
	switch job.Channel {
	case domain.DeliveryChannelInApp:
		n := notification.NewStatusNotification(job.Payload)
		return d.notifications.Create(ctx, n, &job.ID)

	case domain.DeliveryChannelEmail:
		owner, err := d.users.GetByID(ctx, job.Payload.OwnerID)
		if err != nil {
			return fmt.Errorf("load owner: %w", err)
		}
		return d.mail.SendStatusEmail(ctx, *owner, job.Payload)

	default:
		return fmt.Errorf("unknown channel %q: %w", job.Channel, domain.ErrValidation)
	}
}

func (d *Delivery) settle(ctx context.Context, job *domain.DeliveryJob, deliverErr error) {
	log := d.log.With(
		slog.String("job_id", job.ID.String()),
		slog.String("channel", job.Channel.String()),
		slog.Int64("report_id", job.Payload.ReportID),
	)

	if deliverErr == nil {
		if err := d.jobs.MarkSent(ctx, job.ID); err != nil {
			log.ErrorContext(ctx, "mark job sent", slog.String("error", err.Error()))
			return
		}
		log.InfoContext(ctx, "delivery job sent")
		return
	}

	attempts := job.Attempts + 1
	msg := deliverErr.Error()

	if attempts >= d.cfg.MaxAttempts || permanent(deliverErr) {
		if err := d.jobs.MarkFailed(ctx, job.ID, attempts, msg); err != nil {
			log.ErrorContext(ctx, "mark job failed", slog.String("error", err.Error()))
			return
		}
		log.ErrorContext(ctx, "delivery job failed",
			slog.Int("attempts", attempts),
			slog.String("error", msg),
		)
		return
	}

	next := d.now().Add(domain.RetryDelay(attempts))
	if err := d.jobs.MarkRetry(ctx, job.ID, attempts, next, msg); err != nil {
		log.ErrorContext(ctx, "mark job for retry", slog.String("error", err.Error()))
		return
	}
	log.WarnContext(ctx, "delivery job will be retried",
		slog.Int("attempts", attempts),
		slog.Time("next_attempt_at", next),
		slog.String("error", msg),
	)
}

// permanent reports errors that no retry can fix.
func permanent(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation)
}
