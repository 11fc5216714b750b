// Package dbtest builds throwaway observation datasets for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"climate-api/tools/migrate"

	_ "github.com/mattn/go-sqlite3"
)

type Measurement struct {
	Station string
	Date    string
	Prcp    *float64
	Tobs    float64
}

func Float(v float64) *float64 { return &v }

// Sample returns the path of a dataset holding the embedded sample data.
func Sample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	withWritable(t, path, func(db *sql.DB) {
		if _, err := migrate.Run(context.Background(), db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	})
	return path
}

// Create returns the path of a dataset with the schema and exactly the given rows.
// Measurements are inserted in slice order.
func Create(t *testing.T, stations []string, measurements []Measurement) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	withWritable(t, path, func(db *sql.DB) {
		ctx := context.Background()
		if _, err := migrate.RunUpTo(ctx, db, "0001"); err != nil {
			t.Fatalf("migrate schema: %v", err)
		}
		for _, s := range stations {
			if _, err := db.ExecContext(ctx, `INSERT INTO station (station, name) VALUES (?, ?)`, s, s+" name"); err != nil {
				t.Fatalf("insert station %s: %v", s, err)
			}
		}
		for _, m := range measurements {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO measurement (station, date, prcp, tobs) VALUES (?, ?, ?, ?)`,
				m.Station, m.Date, m.Prcp, m.Tobs,
			); err != nil {
				t.Fatalf("insert measurement %+v: %v", m, err)
			}
		}
	})
	return path
}

// Exec runs raw SQL against a dataset file, for tests that need a broken schema.
func Exec(t *testing.T, path string, stmts ...string) {
	t.Helper()
	withWritable(t, path, func(db *sql.DB) {
		for _, s := range stmts {
			if _, err := db.Exec(s); err != nil {
				t.Fatalf("exec %q: %v", s, err)
			}
		}
	})
}

// Open opens path read-only and closes it when the test ends.
func Open(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_query_only=true")
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func withWritable(t *testing.T, path string, fn func(db *sql.DB)) {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	}()
	fn(db)
}
