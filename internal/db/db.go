package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"climate-api/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the existing dataset read-only and verifies connectivity.
// The file must already exist; nothing is created or migrated here.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.LogSQL {
		if cfg.Driver != "sqlite3" {
			return nil, fmt.Errorf("db open: DB_LOG_SQL is only supported with the sqlite3 driver, got %q", cfg.Driver)
		}
		db = sql.OpenDB(NewLoggingConnector(dsn, logger))
	} else {
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	// Requests share this pool; each query checks out its own connection.
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// readOnlyParams are appended to file-backed DSNs:
//   - mode=ro: open the file read-only, fail if it does not exist
//   - _query_only: reject any write statement on the connection
//   - _busy_timeout: wait instead of failing while an external writer holds a lock
var readOnlyParams = []string{
	"mode=ro",
	"_query_only=true",
	"_busy_timeout=5000",
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	path := cfg.Path
	if path == "" {
		return "", fmt.Errorf("db: no SQLITE_PATH or DB_DSN configured")
	}

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(readOnlyParams, "&"), nil
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("sqlite database %s: %w", path, err)
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(readOnlyParams, "&")), nil
}
