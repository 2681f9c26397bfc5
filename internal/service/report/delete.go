package report

import (
	"context"
	"fmt"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// Delete removes a draft report. Only its owner or an admin may do so.
func (s *Service) Delete(ctx context.Context, kind domain.ReportKind, id int64) error {
	userID, isAdmin, err := identity(ctx)
	if err != nil {
		return err
	}
	if err := validKind(kind); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.reports.FindForUpdate(txCtx, kind, id)
		if err != nil {
			return fmt.Errorf("find report: %w", err)
		}
		if err := checkMutable(current, userID, isAdmin); err != nil {
			return err
		}
		if err := s.reports.Delete(txCtx, kind, id); err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logMutation(ctx, "report deleted", userID, kind, id)
	return nil
}
