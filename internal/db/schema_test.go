package db

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"climate-api/internal/dbtest"
)

func TestBind_sampleDataset(t *testing.T) {
	db := dbtest.Open(t, dbtest.Sample(t))
	if err := Bind(context.Background(), db, ClimateTables...); err != nil {
		t.Fatalf("Bind() = %v", err)
	}
}

func TestBind_columnNamesAreCaseInsensitive(t *testing.T) {
	path := dbtest.Create(t, nil, nil)
	dbtest.Exec(t, path,
		`DROP TABLE station`,
		`CREATE TABLE station (id INTEGER PRIMARY KEY, STATION TEXT)`,
	)
	db := dbtest.Open(t, path)
	if err := Bind(context.Background(), db, ClimateTables...); err != nil {
		t.Fatalf("Bind() = %v", err)
	}
}

func TestBind_reportsEverythingMissing(t *testing.T) {
	path := dbtest.Create(t, nil, nil)
	dbtest.Exec(t, path,
		`DROP TABLE station`,
		`DROP TABLE measurement`,
		`CREATE TABLE measurement (id INTEGER PRIMARY KEY, station TEXT, date TEXT)`,
	)
	db := dbtest.Open(t, path)

	err := Bind(context.Background(), db, ClimateTables...)
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("Bind() = %v, want *SchemaError", err)
	}
	if !reflect.DeepEqual(serr.MissingTables, []string{"station"}) {
		t.Errorf("MissingTables = %v, want [station]", serr.MissingTables)
	}
	if !reflect.DeepEqual(serr.MissingColumns["measurement"], []string{"prcp", "tobs"}) {
		t.Errorf("MissingColumns[measurement] = %v, want [prcp tobs]", serr.MissingColumns["measurement"])
	}
	msg := err.Error()
	for _, want := range []string{"missing tables: station", "missing columns in measurement: prcp, tobs"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestBind_queryFailure(t *testing.T) {
	db := dbtest.Open(t, dbtest.Sample(t))
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	err := Bind(context.Background(), db, ClimateTables...)
	if err == nil {
		t.Fatal("Bind() on closed db = nil")
	}
	var serr *SchemaError
	if errors.As(err, &serr) {
		t.Fatalf("Bind() on closed db returned SchemaError: %v", err)
	}
}
