package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is a geographic point in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Report is a red-flag or intervention record submitted by a citizen.
// Kind and OwnerID never change after creation.
type Report struct {
	ID          int64
	OwnerID     uuid.UUID
	Kind        ReportKind
	Title       string
	Description string
	Location    Location
	Status      ReportStatus
	Images      []string
	Videos      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDraft reports whether the report still accepts field and media edits.
func (r *Report) IsDraft() bool {
	return r.Status == ReportStatusDraft
}

// IsOwnedBy reports whether userID created the report.
func (r *Report) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

// ReportView is a report joined with its owner's display fields.
type ReportView struct {
	Report
	OwnerName  string
	OwnerEmail string
}

// MediaLists holds the two media sequences of a report.
type MediaLists struct {
	Images []string
	Videos []string
}

// ReportUpdateParams lists the fields to change. Nil fields are left as is.
type ReportUpdateParams struct {
	Title       *string
	Description *string
	Location    *Location
	Media       *MediaLists
	Status      *ReportStatus
}

// IsEmpty reports whether no field is set.
func (p ReportUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil && p.Media == nil && p.Status == nil
}
