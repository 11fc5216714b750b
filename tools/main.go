// Command climatedb prepares a local observation dataset for development.
//
//	SQLITE_PATH=Resources/hawaii.sqlite go run ./tools migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"climate-api/tools/migrate"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})))

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <command>\n  migrate [version]  apply migrations up to version (default: all)\n", os.Args[0])
		os.Exit(1)
	}

	dbPath := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if dbPath == "" {
		dbPath = "Resources/hawaii.sqlite"
	}
	dbPath = filepath.Clean(dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "migrate":
		target := ""
		if len(os.Args) > 2 {
			target = os.Args[2]
		}
		if err := runMigrate(ctx, dbPath, target); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func runMigrate(ctx context.Context, dbPath, target string) error {
	conn, err := Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	applied, err := migrate.RunUpTo(ctx, conn, target)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "path", dbPath, "count", len(applied))
	return nil
}

// Open opens (creating if needed) a writable SQLite file at dbPath.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", buildDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func buildDSN(dbPath string) string {
	params := []string{
		"_busy_timeout=5000",
	}

	if strings.HasPrefix(dbPath, "file:") {
		sep := "?"
		if strings.Contains(dbPath, "?") {
			sep = "&"
		}
		return dbPath + sep + strings.Join(params, "&")
	}
	return fmt.Sprintf("file:%s?%s", dbPath, strings.Join(params, "&"))
}
