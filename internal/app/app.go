// Package app wires configuration, storage, services and transport into
// a running HTTP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql (goose)
	"github.com/pressly/goose/v3"

	"github.com/spars/crm-backend/internal/adapter/postgres"
	activityrepo "github.com/spars/crm-backend/internal/adapter/postgres/activity"
	calllogrepo "github.com/spars/crm-backend/internal/adapter/postgres/calllog"
	commentrepo "github.com/spars/crm-backend/internal/adapter/postgres/comment"
	leadrepo "github.com/spars/crm-backend/internal/adapter/postgres/lead"
	newsletterrepo "github.com/spars/crm-backend/internal/adapter/postgres/newsletter"
	reminderrepo "github.com/spars/crm-backend/internal/adapter/postgres/reminder"
	rolerepo "github.com/spars/crm-backend/internal/adapter/postgres/role"
	submissionrepo "github.com/spars/crm-backend/internal/adapter/postgres/submission"
	tagrepo "github.com/spars/crm-backend/internal/adapter/postgres/tag"
	userrepo "github.com/spars/crm-backend/internal/adapter/postgres/user"
	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/config"
	"github.com/spars/crm-backend/internal/service/activity"
	authsvc "github.com/spars/crm-backend/internal/service/auth"
	"github.com/spars/crm-backend/internal/service/calendar"
	"github.com/spars/crm-backend/internal/service/calllog"
	"github.com/spars/crm-backend/internal/service/lead"
	"github.com/spars/crm-backend/internal/service/newsletter"
	"github.com/spars/crm-backend/internal/service/reminder"
	"github.com/spars/crm-backend/internal/service/report"
	"github.com/spars/crm-backend/internal/service/role"
	"github.com/spars/crm-backend/internal/service/submission"
	"github.com/spars/crm-backend/internal/service/tag"
	"github.com/spars/crm-backend/internal/service/user"
	"github.com/spars/crm-backend/internal/transport/middleware"
	"github.com/spars/crm-backend/internal/transport/rest"
	"github.com/spars/crm-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects
// to PostgreSQL, applies pending migrations, wires services and serves
// HTTP until ctx is cancelled.
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
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	users := userrepo.New(pool)
	roles := rolerepo.New(pool)
	leads := leadrepo.New(pool)
	comments := commentrepo.New(pool)
	callLogs := calllogrepo.New(pool)
	reminders := reminderrepo.New(pool)
	activities := activityrepo.New(pool)
	submissions := submissionrepo.New(pool)
	subscribers := newsletterrepo.New(pool)
	tags := tagrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// The activity service doubles as the audit sink every mutating
	// service records through.
	activitySvc := activity.NewService(logger, activities)

	authSvc := authsvc.NewService(logger, users, activitySvc, tokens, cfg.Auth)
	userSvc := user.NewService(logger, users, roles, activitySvc, cfg.Auth)
	roleSvc := role.NewService(logger, roles, users)
	leadSvc := lead.NewService(logger, leads, users, submissions, comments, callLogs, reminders, tags, txm, activitySvc)
	callLogSvc := calllog.NewService(logger, callLogs, leads, activitySvc)
	reminderSvc := reminder.NewService(logger, reminders, leads, activitySvc)
	calendarSvc := calendar.NewService(logger, reminders, leads, callLogs)
	submissionSvc := submission.NewService(logger, submissions, activitySvc)
	newsletterSvc := newsletter.NewService(logger, subscribers)
	tagSvc := tag.NewService(logger, tags)
	reportSvc := report.NewService(logger, users, leads, callLogs)

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Auth:       rest.NewAuthHandler(authSvc, logger),
		User:       rest.NewUserHandler(userSvc, logger),
		Role:       rest.NewRoleHandler(roleSvc, logger),
		Lead:       rest.NewLeadHandler(leadSvc, logger),
		CallLog:    rest.NewCallLogHandler(callLogSvc, logger),
		Reminder:   rest.NewReminderHandler(reminderSvc, logger),
		Calendar:   rest.NewCalendarHandler(calendarSvc, logger),
		Activity:   rest.NewActivityHandler(activitySvc, logger),
		Submission: rest.NewSubmissionHandler(submissionSvc, logger),
		Newsletter: rest.NewNewsletterHandler(newsletterSvc, logger),
		Tag:        rest.NewTagHandler(tagSvc, logger),
		Report:     rest.NewReportHandler(reportSvc, logger),
	}

	router := rest.NewRouter(logger, cfg.CORS, rl, cfg.RateLimit.PublicPerMinute, tokens, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// migrate applies pending goose migrations from the embedded FS. goose
// needs database/sql, so this opens its own short-lived connection.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(migrateCtx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
