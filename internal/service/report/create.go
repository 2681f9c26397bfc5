package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/service/media"
	"github.com/heartmarshall/ireporter-backend/pkg/ctxutil"
)

// Create stores a new draft report owned by the caller. Attached files are
// classified into images and videos; files of other types are dropped.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Report, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	lists := media.Classify(input.Files)
	created, err := s.reports.Insert(ctx, &domain.Report{
		OwnerID:     userID,
		Kind:        input.Kind,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Location:    domain.Location{Latitude: *input.Latitude, Longitude: *input.Longitude},
		Status:      domain.ReportStatusDraft,
		Images:      lists.Images,
		Videos:      lists.Videos,
	})
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	s.logMutation(ctx, "report created", userID, created.Kind, created.ID)
	return created, nil
}
