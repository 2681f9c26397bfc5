// Package outbox implements the delivery job queue used to hand status change
// notifications to the background worker.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

const table = "delivery_jobs"

// claimSQL leases up to $1 due jobs for $2 seconds. Rows locked by another
// worker are skipped, and a crashed worker's lease simply expires.
const claimSQL = `
UPDATE delivery_jobs
SET next_attempt_at = now() + make_interval(secs => $2), updated_at = now()
WHERE id IN (
    SELECT id FROM delivery_jobs
    WHERE status = 'pending' AND next_attempt_at <= now()
    ORDER BY next_attempt_at
    LIMIT $1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, channel, payload, status, attempts, next_attempt_at, last_error, created_at, updated_at`

// Repo provides delivery job persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new outbox repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type jobRow struct {
	ID            uuid.UUID `db:"id"`
	Channel       string    `db:"channel"`
	Payload       []byte    `db:"payload"`
	Status        string    `db:"status"`
	Attempts      int       `db:"attempts"`
	NextAttemptAt time.Time `db:"next_attempt_at"`
	LastError     *string   `db:"last_error"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Enqueue stores pending jobs in a single statement. Missing ids are assigned.
func (r *Repo) Enqueue(ctx context.Context, jobs ...*domain.DeliveryJob) error {
	if len(jobs) == 0 {
		return nil
	}

	query := postgres.Builder().
		Insert(table).
		Columns("id", "channel", "payload", "next_attempt_at")

	now := time.Now()
	for _, j := range jobs {
		if j.ID == uuid.Nil {
			j.ID = uuid.New()
		}
		if j.NextAttemptAt.IsZero() {
			j.NextAttemptAt = now
		}
		j.Status = domain.DeliveryStatusPending

		payload, err := json.Marshal(j.Payload)
		if err != nil {
			return fmt.Errorf("encode delivery payload: %w", err)
		}
		query = query.Values(j.ID, string(j.Channel), payload, j.NextAttemptAt)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build enqueue: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "delivery job", jobs[0].ID)
	}
	return nil
}

// Claim leases up to limit due jobs, oldest due first. A job whose payload
// cannot be decoded is marked failed and left out of the result.
func (r *Repo) Claim(ctx context.Context, limit int, lease time.Duration) ([]*domain.DeliveryJob, error) {
	var rows []jobRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, claimSQL, limit, lease.Seconds()); err != nil {
		return nil, fmt.Errorf("claim delivery jobs: %w", err)
	}

	out := make([]*domain.DeliveryJob, 0, len(rows))
	for _, row := range rows {
		job, err := toDomain(row)
		if err != nil {
			if markErr := r.MarkFailed(ctx, row.ID, row.Attempts, err.Error()); markErr != nil {
				return nil, fmt.Errorf("fail undecodable job: %w", markErr)
			}
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

// MarkSent finishes a job successfully.
func (r *Repo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.finish(ctx, id, postgres.Builder().
		Update(table).
		Set("status", string(domain.DeliveryStatusSent)).
		Set("last_error", nil).
		Set("updated_at", squirrel.Expr("now()")))
}

// MarkRetry records a failed attempt and schedules the next one.
func (r *Repo) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time, lastErr string) error {
	return r.finish(ctx, id, postgres.Builder().
		Update(table).
		Set("attempts", attempts).
		Set("next_attempt_at", nextAttemptAt).
		Set("last_error", lastErr).
		Set("updated_at", squirrel.Expr("now()")))
}

// MarkFailed gives up on a job after its last attempt.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error {
	return r.finish(ctx, id, postgres.Builder().
		Update(table).
		Set("status", string(domain.DeliveryStatusFailed)).
		Set("attempts", attempts).
		Set("last_error", lastErr).
		Set("updated_at", squirrel.Expr("now()")))
}

func (r *Repo) finish(ctx context.Context, id uuid.UUID, query squirrel.UpdateBuilder) error {
	sql, args, err := query.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build job update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "delivery job", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// PurgeFinished deletes sent and failed jobs last touched before olderThan.
func (r *Repo) PurgeFinished(ctx context.Context, olderThan time.Time) (int64, error) {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.NotEq{"status": string(domain.DeliveryStatusPending)}).
		Where(squirrel.Lt{"updated_at": olderThan}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("purge delivery jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toDomain(row jobRow) (*domain.DeliveryJob, error) {
	var payload domain.StatusChange
	if err := json.Unmarshal(row.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload of delivery job %s: %w", row.ID, err)
	}
	return &domain.DeliveryJob{
		ID:            row.ID,
		Channel:       domain.DeliveryChannel(row.Channel),
		Payload:       payload,
		Status:        domain.DeliveryStatus(row.Status),
		Attempts:      row.Attempts,
		NextAttemptAt: row.NextAttemptAt,
		LastError:     row.LastError,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
