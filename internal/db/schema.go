package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// TableSpec names a pre-existing table and the columns the service reads from it.
type TableSpec struct {
	Name    string
	Columns []string
}

// ClimateTables are the two tables of the observation dataset.
var ClimateTables = []TableSpec{
	{Name: "measurement", Columns: []string{"station", "date", "prcp", "tobs"}},
	{Name: "station", Columns: []string{"station"}},
}

// SchemaError reports every table and column that Bind could not find.
type SchemaError struct {
	MissingTables  []string
	MissingColumns map[string][]string
	order          []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.MissingTables) > 0 {
		parts = append(parts, "missing tables: "+strings.Join(e.MissingTables, ", "))
	}
	for _, table := range e.order {
		cols := e.MissingColumns[table]
		parts = append(parts, fmt.Sprintf("missing columns in %s: %s", table, strings.Join(cols, ", ")))
	}
	return "schema: " + strings.Join(parts, "; ")
}

func (e *SchemaError) empty() bool {
	return len(e.MissingTables) == 0 && len(e.MissingColumns) == 0
}

// Bind checks the store's catalog for each table and its required columns.
// It returns a *SchemaError describing everything that is missing, or nil.
func Bind(ctx context.Context, db *sql.DB, tables ...TableSpec) error {
	serr := &SchemaError{MissingColumns: map[string][]string{}}
	for _, table := range tables {
		cols, err := tableColumns(ctx, db, table.Name)
		if err != nil {
			return fmt.Errorf("schema: inspect %s: %w", table.Name, err)
		}
		if len(cols) == 0 {
			serr.MissingTables = append(serr.MissingTables, table.Name)
			continue
		}
		var missing []string
		for _, c := range table.Columns {
			if !cols[strings.ToLower(c)] {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			serr.MissingColumns[table.Name] = missing
			serr.order = append(serr.order, table.Name)
		}
		slog.Debug("schema bound", "table", table.Name, "columns", len(cols))
	}
	if serr.empty() {
		return nil
	}
	return serr
}

// tableColumns returns the lower-cased column names of table, or an empty set
// when the table does not exist.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close table info rows", "table", table, "error", err)
		}
	}()
	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[strings.ToLower(name)] = true
	}
	return out, rows.Err()
}
