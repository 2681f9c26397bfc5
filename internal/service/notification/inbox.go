package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/pkg/ctxutil"
)

// DefaultListLimit caps how many notifications List returns.
const DefaultListLimit = 100

type notificationRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Inbox is the caller's view of their notifications.
type Inbox struct {
	Items  []*domain.Notification
	Unread int
}

// Service serves the notification inbox of the authenticated user.
type Service struct {
	notifications notificationRepo
	log           *slog.Logger
}

// NewService creates a new inbox service.
func NewService(log *slog.Logger, notifications notificationRepo) *Service {
	return &Service{
		notifications: notifications,
		log:           log.With("service", "notification"),
	}
}

// List returns the caller's notifications, newest first, with the unread count.
func (s *Service) List(ctx context.Context) (*Inbox, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.notifications.ListByUser(ctx, userID, DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	return &Inbox{Items: items, Unread: unread}, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.notifications.MarkRead(ctx, userID, id); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications as read and returns
// how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	n, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	s.log.InfoContext(ctx, "notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int64("count", n),
	)
	return n, nil
}
