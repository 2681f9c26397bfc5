package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ireporter-backend/internal/adapter/mail"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres"
	notificationrepo "github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/outbox"
	reportrepo "github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/report"
	userrepo "github.com/heartmarshall/ireporter-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/redis"
	"github.com/heartmarshall/ireporter-backend/internal/adapter/storage"
	"github.com/heartmarshall/ireporter-backend/internal/auth"
	"github.com/heartmarshall/ireporter-backend/internal/config"
	authsvc "github.com/heartmarshall/ireporter-backend/internal/service/auth"
	"github.com/heartmarshall/ireporter-backend/internal/service/notification"
	"github.com/heartmarshall/ireporter-backend/internal/service/report"
	"github.com/heartmarshall/ireporter-backend/internal/service/user"
	"github.com/heartmarshall/ireporter-backend/internal/transport/middleware"
	"github.com/heartmarshall/ireporter-backend/internal/transport/rest"
	"github.com/heartmarshall/ireporter-backend/internal/worker"
	"github.com/heartmarshall/ireporter-backend/migrations"
)

const (
	requestsPerMinute = 600
	rateLimitCleanup  = 5 * time.Minute
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL (and Redis when configured), then serves HTTP and runs the
// delivery worker until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	uploads, err := storage.New(logger, cfg.Upload.Dir)
	if err != nil {
		return err
	}

	// Repositories.
	reports := reportrepo.New(pool)
	users := userrepo.New(pool)
	notifications := notificationrepo.New(pool)
	jobs := outbox.New(pool)
	tx := postgres.NewTxManager(pool)

	health := rest.NewHealthHandler(pool, BuildVersion())

	var notifier *redis.Notifier
	if cfg.Redis.Enabled() {
		notifier = redis.New(logger, cfg.Redis)
		defer notifier.Close()

		if err := notifier.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, delivery falls back to polling", slog.String("error", err.Error()))
		}
		health.WithComponent("redis", notifier)
	}

	// Services.
	var dispatcher *notification.Dispatcher
	if notifier != nil {
		dispatcher = notification.NewDispatcher(logger, jobs, notifier)
	} else {
		dispatcher = notification.NewDispatcher(logger, jobs, nil)
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, jwt, cfg.Auth)
	reportService := report.NewService(logger, reports, tx, dispatcher)
	inboxService := notification.NewService(logger, notifications)
	userService := user.NewService(logger, users)

	delivery := worker.NewDelivery(logger, cfg.Delivery, jobs, notifications, users, mail.New(logger, cfg.Mail))

	// Transport.
	limiter := middleware.NewRateLimiter(rateLimitCleanup)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Health:        health,
		Auth:          rest.NewAuthHandler(authService, userService, logger),
		Reports:       rest.NewReportHandler(reportService, uploads, cfg.Upload.MaxBytes, logger),
		Notifications: rest.NewNotificationHandler(inboxService, logger),
		Admin:         rest.NewAdminHandler(userService, logger),
		UploadDir:     uploads.Dir(),
		UploadPath:    cfg.Upload.PublicPath,
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(requestsPerMinute),
		middleware.Auth(authService),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if notifier != nil {
			delivery.WithWake(notifier.Listen(gctx))
		}
		return delivery.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
