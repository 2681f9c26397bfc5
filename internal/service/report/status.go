package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// TransitionStatus sets a report's status and notifies its owner once the
// change is committed. Admin rights are checked by the caller. The current
// status is not checked, so a resolved report can still be moved to rejected.
// Notification failures are logged and never fail the transition.
func (s *Service) TransitionStatus(ctx context.Context, input TransitionInput) (*domain.Report, error) {
	userID, _, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		oldStatus domain.ReportStatus
		updated   *domain.Report
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.reports.FindForUpdate(txCtx, input.Kind, input.ID)
		if err != nil {
			return fmt.Errorf("find report: %w", err)
		}
		oldStatus = current.Status

		status := input.Status
		updated, err = s.reports.Update(txCtx, input.Kind, input.ID, domain.ReportUpdateParams{Status: &status})
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "report status changed",
		slog.String("user_id", userID.String()),
		slog.String("kind", input.Kind.String()),
		slog.Int64("report_id", input.ID),
		slog.String("old_status", oldStatus.String()),
		slog.String("new_status", updated.Status.String()),
	)

	change := domain.StatusChange{
		Kind:      updated.Kind,
		ReportID:  updated.ID,
		OwnerID:   updated.OwnerID,
		Title:     updated.Title,
		OldStatus: oldStatus,
		NewStatus: updated.Status,
	}
	if err := s.notify.NotifyStatusChange(ctx, change); err != nil {
		s.log.WarnContext(ctx, "status change notification not queued",
			slog.String("kind", change.Kind.String()),
			slog.Int64("report_id", change.ReportID),
			slog.String("error", err.Error()),
		)
	}

	return updated, nil
}
