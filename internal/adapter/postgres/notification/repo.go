// Package notification implements the in-app notification store.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

const table = "notifications"

var columns = []string{
	"id", "user_id", "title", "message", "type",
	"related_entity_type", "related_entity_id", "is_read", "created_at",
}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type notificationRow struct {
	ID                uuid.UUID `db:"id"`
	UserID            uuid.UUID `db:"user_id"`
	Title             string    `db:"title"`
	Message           string    `db:"message"`
	Type              string    `db:"type"`
	RelatedEntityType string    `db:"related_entity_type"`
	RelatedEntityID   int64     `db:"related_entity_id"`
	IsRead            bool      `db:"is_read"`
	CreatedAt         time.Time `db:"created_at"`
}

// Create inserts a notification. When jobID is set, a second insert for the
// same delivery job is silently skipped so retried deliveries stay single.
func (r *Repo) Create(ctx context.Context, n *domain.Notification, jobID *uuid.UUID) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	query := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "title", "message", "type", "related_entity_type", "related_entity_id", "delivery_job_id").
		Values(n.ID, n.UserID, n.Title, n.Message, string(n.Type), string(n.RelatedEntityType), n.RelatedEntityID, jobID)
	if jobID != nil {
		query = query.Suffix("ON CONFLICT (delivery_job_id) DO NOTHING")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build notification insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notification list: %w", err)
	}

	var rows []notificationRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "notifications of user", userID)
	}

	out := make([]*domain.Notification, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

// CountUnread returns how many of the user's notifications are unread.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build unread count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "notifications of user", userID)
	}
	return n, nil
}

// MarkRead marks one of the user's notifications as read. A notification
// addressed to someone else is reported as not found.
func (r *Repo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many changed.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark all read: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "notifications of user", userID)
	}
	return tag.RowsAffected(), nil
}

func toDomain(row notificationRow) *domain.Notification {
	return &domain.Notification{
		ID:                row.ID,
		UserID:            row.UserID,
		Title:             row.Title,
		Message:           row.Message,
		Type:              domain.NotificationType(row.Type),
		RelatedEntityType: domain.ReportKind(row.RelatedEntityType),
		RelatedEntityID:   row.RelatedEntityID,
		IsRead:            row.IsRead,
		CreatedAt:         row.CreatedAt,
	}
}
