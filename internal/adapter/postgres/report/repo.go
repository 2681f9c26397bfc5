// Package report implements the report store for both report kinds using
// PostgreSQL. Each kind lives in its own table with an identical layout.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

var tables = map[domain.ReportKind]string{
	domain.ReportKindRedFlag:      "red_flags",
	domain.ReportKindIntervention: "interventions",
}

var columns = []string{
	"id", "owner_id", "title", "description", "latitude", "longitude",
	"status", "images", "videos", "created_at", "updated_at",
}

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new report repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type reportRow struct {
	ID          int64     `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Latitude    float64   `db:"latitude"`
	Longitude   float64   `db:"longitude"`
	Status      string    `db:"status"`
	Images      []byte    `db:"images"`
	Videos      []byte    `db:"videos"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type reportViewRow struct {
	ID          int64     `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Latitude    float64   `db:"latitude"`
	Longitude   float64   `db:"longitude"`
	Status      string    `db:"status"`
	Images      []byte    `db:"images"`
	Videos      []byte    `db:"videos"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	OwnerName   string    `db:"owner_name"`
	OwnerEmail  string    `db:"owner_email"`
}

func (v reportViewRow) report() reportRow {
	return reportRow{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		Status:      v.Status,
		Images:      v.Images,
		Videos:      v.Videos,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func tableFor(kind domain.ReportKind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("report kind %q: %w", kind, domain.ErrValidation)
	}
	return t, nil
}

func qualified(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// FindForUpdate returns the report with the given id and holds a row lock
// on it until the surrounding transaction ends.
func (r *Repo) FindForUpdate(ctx context.Context, kind domain.ReportKind, id int64) (*domain.Report, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	var row reportRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, id)
	}

	return toDomain(kind, row)
}

// GetView returns the report joined with its owner's name and email.
func (r *Repo) GetView(ctx context.Context, kind domain.ReportKind, id int64) (*domain.ReportView, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	sql, args, err := postgres.Builder().
		Select(qualified("r")...).
		Columns("u.name AS owner_name", "u.email AS owner_email").
		From(table + " r").
		Join("users u ON u.id = r.owner_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build view query: %w", err)
	}

	var row reportViewRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, id)
	}

	rep, err := toDomain(kind, row.report())
	if err != nil {
		return nil, err
	}
	return &domain.ReportView{Report: *rep, OwnerName: row.OwnerName, OwnerEmail: row.OwnerEmail}, nil
}

// ListAll returns every report of the kind, newest first.
func (r *Repo) ListAll(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	return r.list(ctx, kind, nil)
}

// ListByOwner returns the reports created by ownerID, newest first.
func (r *Repo) ListByOwner(ctx context.Context, kind domain.ReportKind, ownerID uuid.UUID) ([]*domain.Report, error) {
	return r.list(ctx, kind, squirrel.Eq{"owner_id": ownerID})
}

func (r *Repo) list(ctx context.Context, kind domain.ReportKind, where squirrel.Sqlizer) ([]*domain.Report, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []reportRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, "list")
	}

	out := make([]*domain.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := toDomain(kind, row)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

// Insert persists a new report and returns it with id and timestamps set.
// Status is always stored as draft.
func (r *Repo) Insert(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	table, err := tableFor(rep.Kind)
	if err != nil {
		return nil, err
	}

	images, err := domain.EncodeMediaList(rep.Images)
	if err != nil {
		return nil, err
	}
	videos, err := domain.EncodeMediaList(rep.Videos)
	if err != nil {
		return nil, err
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("owner_id", "title", "description", "latitude", "longitude", "status", "images", "videos").
		Values(rep.OwnerID, rep.Title, rep.Description, rep.Location.Latitude, rep.Location.Longitude,
			string(domain.ReportStatusDraft), images, videos).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	var row reportRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, "new")
	}

	return toDomain(rep.Kind, row)
}

// Update applies the non-nil fields of params, bumps updated_at and returns
// the stored report.
func (r *Repo) Update(ctx context.Context, kind domain.ReportKind, id int64, params domain.ReportUpdateParams) (*domain.Report, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := postgres.Builder().
		Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if params.Title != nil {
		query = query.Set("title", *params.Title)
	}
	if params.Description != nil {
		query = query.Set("description", *params.Description)
	}
	if params.Location != nil {
		query = query.Set("latitude", params.Location.Latitude).
			Set("longitude", params.Location.Longitude)
	}
	if params.Media != nil {
		images, err := domain.EncodeMediaList(params.Media.Images)
		if err != nil {
			return nil, err
		}
		videos, err := domain.EncodeMediaList(params.Media.Videos)
		if err != nil {
			return nil, err
		}
		query = query.Set("images", images).Set("videos", videos)
	}
	if params.Status != nil {
		query = query.Set("status", string(*params.Status))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	var row reportRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, table, id)
	}

	return toDomain(kind, row)
}

// Delete removes the report permanently. Returns ErrNotFound if no row matched.
func (r *Repo) Delete(ctx context.Context, kind domain.ReportKind, id int64) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, table, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrNotFound)
	}

	return nil
}

func toDomain(kind domain.ReportKind, row reportRow) (*domain.Report, error) {
	images, err := domain.DecodeMediaList(row.Images)
	if err != nil {
		return nil, fmt.Errorf("report %d images: %w", row.ID, err)
	}
	videos, err := domain.DecodeMediaList(row.Videos)
	if err != nil {
		return nil, fmt.Errorf("report %d videos: %w", row.ID, err)
	}

	return &domain.Report{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Kind:        kind,
		Title:       row.Title,
		Description: row.Description,
		Location:    domain.Location{Latitude: row.Latitude, Longitude: row.Longitude},
		Status:      domain.ReportStatus(row.Status),
		Images:      images,
		Videos:      videos,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
