package report

import (
	"context"
	"fmt"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// Get returns a report with its owner's name and email. Any authenticated
// caller may read any report by id.
func (s *Service) Get(ctx context.Context, kind domain.ReportKind, id int64) (*domain.ReportView, error) {
	if _, _, err := identity(ctx); err != nil {
		return nil, err
	}
	if err := validKind(kind); err != nil {
		return nil, err
	}

	view, err := s.reports.GetView(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return view, nil
}

// List returns every report of the kind for admins and only the caller's own
// reports otherwise, newest first.
func (s *Service) List(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	userID, isAdmin, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := validKind(kind); err != nil {
		return nil, err
	}

	var reports []*domain.Report
	if isAdmin {
		reports, err = s.reports.ListAll(ctx, kind)
	} else {
		reports, err = s.reports.ListByOwner(ctx, kind, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
