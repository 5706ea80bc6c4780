package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/nightshift-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/nightshift-hris/attendance-backend-go/internal/handler/http"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/email"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/nightshift-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/nightshift-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/nightshift-hris/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/nightshift-hris/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/nightshift-hris/attendance-backend-go/internal/service/report"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(app.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nightshift-attendance"),
		slog.String("version", version),
		slog.String("env", app.Env),
	)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	tx := postgresql.NewTransactor(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	authSvc := serviceAuth.NewAuthService(tx, userRepo, JWTService, refreshTokenRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, breakRepo, employeeRepo, loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)
	reportSvc := reportService.NewReportService(reportRepo, loc)

	router := appHTTP.NewRouter(logger, cfg.App.AllowedOrigins, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	if cfg.Jobs.Enabled {
		emailService, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("failed to initialize email service: %w", err)
		}

		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceRepo, employeeRepo, emailService, cfg.Jobs, loc).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
		slog.Info("Background jobs started", "jobs", scheduler.Jobs(), "interval", cfg.Jobs.Interval)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
