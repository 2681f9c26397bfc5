package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:           uuid.New(),
		Name:         "Test User " + suffix,
		Username:     "user_" + suffix,
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$04$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva",
		Role:         role,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (id, name, username, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		user.ID, user.Name, user.Username, user.Email, user.PasswordHash, string(user.Role),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedReport inserts a draft report of the given kind owned by ownerID.
func SeedReport(t *testing.T, pool *pgxpool.Pool, kind domain.ReportKind, ownerID uuid.UUID) domain.Report {
	t.Helper()
	ctx := context.Background()

	table := "red_flags"
	if kind == domain.ReportKindIntervention {
		table = "interventions"
	}

	r := domain.Report{
		OwnerID:     ownerID,
		Kind:        kind,
		Title:       "Seeded " + uniqueSuffix(),
		Description: "Seeded description",
		Location:    domain.Location{Latitude: 0.30, Longitude: 32.58},
		Status:      domain.ReportStatusDraft,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO `+table+` (owner_id, title, description, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		r.OwnerID, r.Title, r.Description, r.Location.Latitude, r.Location.Longitude,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedReport insert: %v", err)
	}

	return r
}

// JobState is the mutable part of a delivery job row.
type JobState struct {
	Status    domain.DeliveryStatus
	Attempts  int
	LastError *string
}

// DeliveryJobState reads the status columns of a delivery job.
func DeliveryJobState(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) JobState {
	t.Helper()

	var st JobState
	err := pool.QueryRow(context.Background(),
		`SELECT status, attempts, last_error FROM delivery_jobs WHERE id = $1`, id,
	).Scan(&st.Status, &st.Attempts, &st.LastError)
	if err != nil {
		t.Fatalf("testhelper: DeliveryJobState: %v", err)
	}
	return st
}
