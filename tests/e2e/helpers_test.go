//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ireporter-backend/internal/adapter/mail"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres"
	notificationrepo "github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/outbox"
	reportrepo "github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/report"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/storage"
	authpkg "github.com/heartmarshall/ireporter-backend/internal/auth"
	"github.com/heartmarshall/ireporter-backend/internal/config"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	authsvc "github.com/heartmarshall/ireporter-backend/internal/service/auth"
	"github.com/heartmarshall/ireporter-backend/internal/service/notification"
	"github.com/heartmarshall/ireporter-backend/internal/service/report"
	usersvc "github.com/heartmarshall/ireporter-backend/internal/service/user"
	"github.com/heartmarshall/ireporter-backend/internal/transport/middleware"
	"github.com/heartmarshall/ireporter-backend/internal/transport/rest"
	"github.com/heartmarshall/ireporter-backend/internal/worker"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	Delivery *worker.Delivery
	jwt      *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). Mail is disabled, so the
// email channel only logs.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	reports := reportrepo.New(pool)
	users := userrepo.New(pool)
	notifications := notificationrepo.New(pool)
	jobs := outbox.New(pool)

	uploads, err := storage.New(logger, t.TempDir())
	require.NoError(t, err)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	authService := authsvc.NewService(logger, users, jwtMgr, config.AuthConfig{PasswordHashCost: 4})
	userService := usersvc.NewService(logger, users)
	dispatcher := notification.NewDispatcher(logger, jobs, nil)

	delivery := worker.NewDelivery(logger, config.DeliveryConfig{
		PollInterval: time.Second,
		BatchSize:    50,
		MaxAttempts:  3,
	}, jobs, notifications, users, mail.New(logger, config.MailConfig{}))

	router := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(pool, "e2e"),
		Auth:          rest.NewAuthHandler(authService, userService, logger),
		Reports:       rest.NewReportHandler(report.NewService(logger, reports, txm, dispatcher), uploads, 5<<20, logger),
		Notifications: rest.NewNotificationHandler(notification.NewService(logger, notifications), logger),
		Admin:         rest.NewAdminHandler(userService, logger),
		UploadDir:     uploads.Dir(),
		UploadPath:    "/uploads/",
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		}),
		middleware.Auth(authService),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		Delivery: delivery,
		jwt:      jwtMgr,
	}
}

// ---------------------------------------------------------------------------
// Request helpers.
// ---------------------------------------------------------------------------

// envelope is the decoded response body.
type envelope struct {
	Status int               `json:"status"`
	Data   []json.RawMessage `json:"data"`
	Error  string            `json:"error"`
}

// first decodes the first data item into v.
func (e envelope) first(t *testing.T, v any) {
	t.Helper()
	require.NotEmpty(t, e.Data, "expected data in response")
	require.NoError(t, json.Unmarshal(e.Data[0], v))
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+rest.APIPrefix+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Equal(t, resp.StatusCode, env.Status, "envelope status should mirror HTTP status")
	return resp.StatusCode, env
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID      uuid.UUID `json:"id"`
		Email   string    `json:"email"`
		Role    string    `json:"role"`
		IsAdmin bool      `json:"isAdmin"`
	} `json:"user"`
}

type messageData struct {
	ID      json.Number `json:"id"`
	Message string      `json:"message"`
}

type reportData struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Status      string    `json:"status"`
	Images      []string  `json:"images"`
	Videos      []string  `json:"videos"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	OwnerEmail  string    `json:"ownerEmail"`
}

// signup registers a fresh user through the API and returns its token and id.
func signup(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	suffix := uuid.New().String()[:8]
	status, env := ts.do(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"name":     "Reporter " + suffix,
		"username": "reporter_" + suffix,
		"email":    "reporter-" + suffix + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	var data authData
	env.first(t, &data)
	require.NotEmpty(t, data.Token)
	return data.Token, data.User.ID
}

// adminToken seeds an admin directly and signs a token for it.
func adminToken(t *testing.T, ts *testServer) string {
	t.Helper()

	admin := testhelper.SeedUser(t, ts.Pool, domain.UserRoleAdmin)
	token, err := ts.jwt.GenerateAccessToken(admin.ID, admin.Role.String())
	require.NoError(t, err)
	return token
}

// createReport posts a JSON report and returns its id.
func createReport(t *testing.T, ts *testServer, token, segment string) int64 {
	t.Helper()

	status, env := ts.do(t, http.MethodPost, "/"+segment, token, map[string]any{
		"title":       "Bribery at checkpoint",
		"description": "Officer demanded cash",
		"latitude":    0.3476,
		"longitude":   32.5825,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	var msg messageData
	env.first(t, &msg)
	id, err := msg.ID.Int64()
	require.NoError(t, err)
	return id
}

func reportPath(segment string, id int64, suffix string) string {
	return fmt.Sprintf("/%s/%d%s", segment, id, suffix)
}

// deliverAll runs the delivery worker until the queue is drained and returns
// the number of jobs it claimed.
func deliverAll(t *testing.T, ts *testServer) int {
	t.Helper()
	total := 0
	for {
		n, err := ts.Delivery.RunOnce(context.Background())
		require.NoError(t, err)
		if n == 0 {
			return total
		}
		total += n
	}
}
