// Package user implements the User repository using PostgreSQL.
package user

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

const table = "users"

var columns = []string{"id", "name", "username", "email", "password_hash", "role", "created_at", "updated_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address (case-insensitive).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = lower(?)", email), email)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, key any) (*domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", key)
	}

	return toDomain(row), nil
}

// Create inserts a new user and returns the persisted domain.User.
// Duplicate email or username yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	role := u.Role
	if role == "" {
		role = domain.UserRoleUser
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "name", "username", "email", "password_hash", "role").
		Values(u.ID, u.Name, u.Username, u.Email, u.PasswordHash, string(role)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user insert: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return toDomain(row), nil
}

// SetRoleByEmail changes the role of the user with the given email.
func (r *Repo) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "unknown role")
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("role", string(role)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build role update: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", email)
	}

	return toDomain(row), nil
}

// UpdateRole changes the role of the user with the given id.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "unknown role")
	}

	sql, args, err := postgres.Builder().
		Update(table).
		Set("role", string(role)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build role update: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return toDomain(row), nil
}

// ListUsers returns a page of users ordered by signup time, newest first.
func (r *Repo) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user list: %w", err)
	}

	var rows []userRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.User, len(rows))
	for i, row := range rows {
		out[i] = *toDomain(row)
	}
	return out, nil
}

// CountUsers returns the total number of users.
func (r *Repo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, "SELECT count(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func toDomain(row userRow) *domain.User {
	return &domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         domain.UserRole(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
