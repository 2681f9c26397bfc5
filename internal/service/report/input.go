package report

import (
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

// CreateInput holds the parameters for creating a report.
// Latitude and Longitude are pointers so a missing value can be told apart
// from zero.
type CreateInput struct {
	Kind        domain.ReportKind
	Title       string
	Description string
	Latitude    *float64
	Longitude   *float64
	Files       []domain.MediaFile
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = appendKindErr(errs, i.Kind)
	errs = appendTextErr(errs, "title", i.Title, maxTitleLen)
	errs = appendTextErr(errs, "description", i.Description, maxDescriptionLen)
	errs = appendLocationErrs(errs, i.Latitude, i.Longitude)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateLocationInput holds the new coordinates of a report.
type UpdateLocationInput struct {
	Kind      domain.ReportKind
	ID        int64
	Latitude  *float64
	Longitude *float64
}

// Validate checks all fields and collects all errors.
func (i UpdateLocationInput) Validate() error {
	var errs []domain.FieldError

	errs = appendKindErr(errs, i.Kind)
	errs = appendLocationErrs(errs, i.Latitude, i.Longitude)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateCommentInput holds the new description of a report.
type UpdateCommentInput struct {
	Kind    domain.ReportKind
	ID      int64
	Comment string
}

// Validate checks all fields and collects all errors.
func (i UpdateCommentInput) Validate() error {
	var errs []domain.FieldError

	errs = appendKindErr(errs, i.Kind)
	errs = appendTextErr(errs, "comment", i.Comment, maxDescriptionLen)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput is a full update. Nil fields keep their value; a non-empty
// Files batch replaces both media lists.
type UpdateInput struct {
	Kind        domain.ReportKind
	ID          int64
	Title       *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Files       []domain.MediaFile
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	errs = appendKindErr(errs, i.Kind)
	if i.Title == nil && i.Description == nil && i.Latitude == nil && i.Longitude == nil && len(i.Files) == 0 {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		errs = appendTextErr(errs, "title", *i.Title, maxTitleLen)
	}
	if i.Description != nil {
		errs = appendTextErr(errs, "description", *i.Description, maxDescriptionLen)
	}
	if i.Latitude != nil || i.Longitude != nil {
		errs = appendLocationErrs(errs, i.Latitude, i.Longitude)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddMediaInput holds a batch of uploaded files to append.
type AddMediaInput struct {
	Kind  domain.ReportKind
	ID    int64
	Files []domain.MediaFile
}

// TransitionInput holds an admin status change.
type TransitionInput struct {
	Kind   domain.ReportKind
	ID     int64
	Status domain.ReportStatus
}

// Validate checks all fields and collects all errors.
func (i TransitionInput) Validate() error {
	var errs []domain.FieldError

	errs = appendKindErr(errs, i.Kind)
	if !i.Status.IsTransitionTarget() {
		errs = append(errs, domain.FieldError{
			Field:   "status",
			Message: "must be one of under-investigation, rejected, resolved",
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendKindErr(errs []domain.FieldError, kind domain.ReportKind) []domain.FieldError {
	if !kind.IsValid() {
		return append(errs, domain.FieldError{Field: "kind", Message: "must be red-flag or intervention"})
	}
	return errs
}

func appendTextErr(errs []domain.FieldError, field, value string, maxLen int) []domain.FieldError {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(v) > maxLen:
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}

// appendLocationErrs requires both coordinates together and checks ranges.
func appendLocationErrs(errs []domain.FieldError, lat, lon *float64) []domain.FieldError {
	if lat == nil {
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "required"})
	} else if *lat < -90 || *lat > 90 {
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}

	if lon == nil {
		errs = append(errs, domain.FieldError{Field: "longitude", Message: "required"})
	} else if *lon < -180 || *lon > 180 {
		errs = append(errs, domain.FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	return errs
}
