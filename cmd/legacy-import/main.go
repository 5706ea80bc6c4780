package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nightshift-hris/attendance-backend-go/internal/config"
	"github.com/nightshift-hris/attendance-backend-go/internal/domain/legacy"
	"github.com/nightshift-hris/attendance-backend-go/internal/pkg/database"
	"github.com/nightshift-hris/attendance-backend-go/internal/repository/mysql"
	"github.com/nightshift-hris/attendance-backend-go/internal/repository/postgresql"
	legacyService "github.com/nightshift-hris/attendance-backend-go/internal/service/legacy"
)

func main() {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	from := flag.String("from", "", "first shift date to import (YYYY-MM-DD)")
	to := flag.String("to", yesterday, "last shift date to import (YYYY-MM-DD)")
	dryRun := flag.Bool("dry-run", false, "recompute and report without writing")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(*from, *to, *dryRun); err != nil {
		slog.Error("Legacy import failed", "error", err)
		os.Exit(1)
	}
}

func run(from, to string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	loc := cfg.Location()

	legacyDB, err := database.NewMySQLDB(database.MySQLOptions{
		Host:     cfg.Legacy.Host,
		Port:     cfg.Legacy.Port,
		User:     cfg.Legacy.User,
		Password: cfg.Legacy.Password,
		Name:     cfg.Legacy.Name,
		Location: loc,
	})
	if err != nil {
		return err
	}
	defer legacyDB.Close()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	importer := legacyService.NewImporter(
		postgresql.NewTransactor(db),
		mysql.NewLegacyRepository(legacyDB),
		postgresql.NewAttendanceRepository(db),
		postgresql.NewBreakRepository(db),
		postgresql.NewEmployeeRepository(db),
		loc,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := importer.Import(ctx, legacy.ImportRequest{From: from, To: to, DryRun: dryRun})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
