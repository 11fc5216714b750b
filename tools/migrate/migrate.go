// Package migrate builds a local copy of the observation dataset from versioned,
// embedded SQL files. Files are named with a 4-digit prefix for order:
// 0001_schema.sql, 0002_sample_data.sql.
//
// The API server never runs migrations; it only reads a dataset that already exists.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"sort"
)

//go:embed sql/*.sql
var sqlFS embed.FS

const (
	migrationsDir = "sql"
	tableName     = "schema_migrations"
)

var (
	migrationFileRe = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)
	versionRe       = regexp.MustCompile(`^\d{4}$`)
)

type Migration struct {
	Version string
	Name    string
	body    string
}

// Run applies every embedded migration that is not yet recorded in
// schema_migrations, in version order, each inside its own transaction.
// It returns the migrations that were applied.
func Run(ctx context.Context, db *sql.DB) ([]Migration, error) {
	return run(ctx, db, sqlFS, "")
}

// RunUpTo is Run limited to migrations whose version is <= target.
// An empty target applies everything.
func RunUpTo(ctx context.Context, db *sql.DB, target string) ([]Migration, error) {
	if target != "" && !versionRe.MatchString(target) {
		return nil, fmt.Errorf("invalid target version %q (expected 4 digits)", target)
	}
	return run(ctx, db, sqlFS, target)
}

func run(ctx context.Context, db *sql.DB, fsys fs.FS, target string) ([]Migration, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}

	pending, err := pendingMigrations(fsys, applied)
	if err != nil {
		return nil, err
	}

	var done []Migration
	for _, m := range pending {
		if target != "" && m.Version > target {
			break
		}
		if err := apply(ctx, db, m); err != nil {
			return done, fmt.Errorf("apply %s_%s.sql: %w", m.Version, m.Name, err)
		}
		slog.Info("migration applied", "version", m.Version, "name", m.Name)
		done = append(done, m)
	}
	return done, nil
}

func pendingMigrations(fsys fs.FS, applied map[string]bool) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var pending []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		version, name, ok := parseMigrationFilename(e.Name())
		if !ok || applied[version] {
			continue
		}
		body, err := fs.ReadFile(fsys, migrationsDir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		pending = append(pending, Migration{Version: version, Name: name, body: string(body)})
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+tableName+` (
			version    TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)
	`)
	return err
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM "+tableName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close applied versions rows", "error", err)
		}
	}()
	out := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func parseMigrationFilename(filename string) (version, name string, ok bool) {
	m := migrationFileRe.FindStringSubmatch(filename)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, m.body); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+tableName+" (version, name) VALUES (?, ?)",
		m.Version, m.Name,
	); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
