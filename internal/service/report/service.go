// Package report implements the report lifecycle: creation, owner edits while
// in draft, deletion and admin status transitions. Both report kinds share the
// same rules; the kind only selects the backing table.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/pkg/ctxutil"
)

var (
	// ErrNotDraft is returned when a report has left draft and can no longer
	// be edited or deleted, by anyone.
	ErrNotDraft = fmt.Errorf("cannot modify record under investigation, rejected, or resolved: %w", domain.ErrForbidden)

	// ErrNotOwner is returned when a non-admin touches someone else's report.
	ErrNotOwner = fmt.Errorf("only the owner can modify this record: %w", domain.ErrForbidden)
)

//go:generate moq -out report_repo_mock_test.go -pkg report . reportRepo
//go:generate moq -out tx_manager_mock_test.go -pkg report . txManager
//go:generate moq -out dispatcher_mock_test.go -pkg report . dispatcher

type reportRepo interface {
	FindForUpdate(ctx context.Context, kind domain.ReportKind, id int64) (*domain.Report, error)
	GetView(ctx context.Context, kind domain.ReportKind, id int64) (*domain.ReportView, error)
	ListAll(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error)
	ListByOwner(ctx context.Context, kind domain.ReportKind, ownerID uuid.UUID) ([]*domain.Report, error)
	Insert(ctx context.Context, r *domain.Report) (*domain.Report, error)
	Update(ctx context.Context, kind domain.ReportKind, id int64, params domain.ReportUpdateParams) (*domain.Report, error)
	Delete(ctx context.Context, kind domain.ReportKind, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type dispatcher interface {
	NotifyStatusChange(ctx context.Context, change domain.StatusChange) error
}

// Service provides report lifecycle operations.
type Service struct {
	reports reportRepo
	tx      txManager
	notify  dispatcher
	log     *slog.Logger
}

// NewService creates a new report service.
func NewService(
	log *slog.Logger,
	reports reportRepo,
	tx txManager,
	notify dispatcher,
) *Service {
	return &Service{
		reports: reports,
		tx:      tx,
		notify:  notify,
		log:     log.With("service", "report"),
	}
}

// identity returns the caller's id and admin flag.
func identity(ctx context.Context) (uuid.UUID, bool, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, false, domain.ErrUnauthorized
	}
	return userID, ctxutil.IsAdminCtx(ctx), nil
}

// checkMutable applies the ownership check and then the draft gate.
// Admins skip the first but never the second.
func checkMutable(r *domain.Report, userID uuid.UUID, isAdmin bool) error {
	if !isAdmin && !r.IsOwnedBy(userID) {
		return ErrNotOwner
	}
	if !r.IsDraft() {
		return ErrNotDraft
	}
	return nil
}

// mutate loads the report under a row lock, checks that the caller may edit
// it, and writes the params produced by build.
func (s *Service) mutate(
	ctx context.Context,
	kind domain.ReportKind,
	id int64,
	build func(current *domain.Report) (domain.ReportUpdateParams, error),
) (*domain.Report, uuid.UUID, error) {
	userID, isAdmin, err := identity(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}

	var updated *domain.Report
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.reports.FindForUpdate(txCtx, kind, id)
		if err != nil {
			return fmt.Errorf("find report: %w", err)
		}
		if err := checkMutable(current, userID, isAdmin); err != nil {
			return err
		}

		params, err := build(current)
		if err != nil {
			return err
		}

		updated, err = s.reports.Update(txCtx, kind, id, params)
		if err != nil {
			return fmt.Errorf("update report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, uuid.Nil, err
	}
	return updated, userID, nil
}

func (s *Service) logMutation(ctx context.Context, msg string, userID uuid.UUID, kind domain.ReportKind, id int64) {
	s.log.InfoContext(ctx, msg,
		slog.String("user_id", userID.String()),
		slog.String("kind", kind.String()),
		slog.Int64("report_id", id),
	)
}

func validKind(kind domain.ReportKind) error {
	if !kind.IsValid() {
		return domain.NewValidationError("kind", "must be red-flag or intervention")
	}
	return nil
}
