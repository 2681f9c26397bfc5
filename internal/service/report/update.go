package report

import (
	"context"
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/service/media"
)

// UpdateComment replaces the description of a draft report.
func (s *Service) UpdateComment(ctx context.Context, input UpdateCommentInput) (*domain.Report, error) {
	if _, _, err := identity(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(input.Comment)
	updated, userID, err := s.mutate(ctx, input.Kind, input.ID, func(*domain.Report) (domain.ReportUpdateParams, error) {
		return domain.ReportUpdateParams{Description: &comment}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logMutation(ctx, "report comment updated", userID, input.Kind, input.ID)
	return updated, nil
}

// UpdateLocation moves a draft report to new coordinates.
func (s *Service) UpdateLocation(ctx context.Context, input UpdateLocationInput) (*domain.Report, error) {
	if _, _, err := identity(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	loc := domain.Location{Latitude: *input.Latitude, Longitude: *input.Longitude}
	updated, userID, err := s.mutate(ctx, input.Kind, input.ID, func(*domain.Report) (domain.ReportUpdateParams, error) {
		return domain.ReportUpdateParams{Location: &loc}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logMutation(ctx, "report location updated", userID, input.Kind, input.ID)
	return updated, nil
}

// Update applies a full update. Uploaded files replace the existing media
// lists; without files the media is left as is.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Report, error) {
	if _, _, err := identity(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, userID, err := s.mutate(ctx, input.Kind, input.ID, func(current *domain.Report) (domain.ReportUpdateParams, error) {
		var params domain.ReportUpdateParams
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			params.Title = &title
		}
		if input.Description != nil {
			desc := strings.TrimSpace(*input.Description)
			params.Description = &desc
		}
		if input.Latitude != nil && input.Longitude != nil {
			params.Location = &domain.Location{Latitude: *input.Latitude, Longitude: *input.Longitude}
		}
		if len(input.Files) > 0 {
			lists := media.Replace(mediaOf(current), input.Files)
			params.Media = &lists
		}
		return params, nil
	})
	if err != nil {
		return nil, err
	}

	s.logMutation(ctx, "report updated", userID, input.Kind, input.ID)
	return updated, nil
}

// AddMedia appends uploaded files to a draft report's media lists.
func (s *Service) AddMedia(ctx context.Context, input AddMediaInput) (*domain.Report, error) {
	if _, _, err := identity(ctx); err != nil {
		return nil, err
	}
	if err := validKind(input.Kind); err != nil {
		return nil, err
	}
	if len(input.Files) == 0 {
		return nil, media.ErrNoFiles
	}

	updated, userID, err := s.mutate(ctx, input.Kind, input.ID, func(current *domain.Report) (domain.ReportUpdateParams, error) {
		lists, err := media.Append(mediaOf(current), input.Files)
		if err != nil {
			return domain.ReportUpdateParams{}, err
		}
		return domain.ReportUpdateParams{Media: &lists}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logMutation(ctx, "report media added", userID, input.Kind, input.ID)
	return updated, nil
}

func mediaOf(r *domain.Report) domain.MediaLists {
	return domain.MediaLists{Images: r.Images, Videos: r.Videos}
}
