package service

import (
	"context"
	"errors"
	"testing"

	"climate-api/internal/dbtest"
	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/types"
)

type mockRepo struct {
	latest    string
	latestOK  bool
	latestErr error

	precipitation []types.Precipitation
	stations      []string
	mostActive    string
	mostActiveOK  bool
	mostActiveErr error
	observations  []types.TemperatureObservation
	stats         types.TemperatureStats
	err           error

	gotSince   []string
	gotStation string
	gotStart   string
	gotEnd     string
}

func (m *mockRepo) LatestDate(ctx context.Context) (string, bool, error) {
	return m.latest, m.latestOK, m.latestErr
}

func (m *mockRepo) PrecipitationSince(ctx context.Context, since string) ([]types.Precipitation, error) {
	m.gotSince = append(m.gotSince, since)
	return m.precipitation, m.err
}

func (m *mockRepo) StationIDs(ctx context.Context) ([]string, error) {
	return m.stations, m.err
}

func (m *mockRepo) MostActiveStation(ctx context.Context) (string, bool, error) {
	return m.mostActive, m.mostActiveOK, m.mostActiveErr
}

func (m *mockRepo) TemperatureObservations(ctx context.Context, stationID string, since string) ([]types.TemperatureObservation, error) {
	m.gotStation = stationID
	m.gotSince = append(m.gotSince, since)
	return m.observations, m.err
}

func (m *mockRepo) TemperatureStatsFrom(ctx context.Context, start string) (types.TemperatureStats, error) {
	m.gotStart = start
	return m.stats, m.err
}

func (m *mockRepo) TemperatureStatsBetween(ctx context.Context, start string, end string) (types.TemperatureStats, error) {
	m.gotStart, m.gotEnd = start, end
	return m.stats, m.err
}

var _ repository.ClimateRepository = (*mockRepo)(nil)

func TestReferenceWindow(t *testing.T) {
	tests := []struct {
		latest string
		cutoff string
	}{
		{latest: "2017-08-23", cutoff: "2016-08-23"},
		// 2016 is a leap year; the window is 365 days, not one calendar year.
		{latest: "2016-03-01", cutoff: "2015-03-02"},
		{latest: "2017-01-01", cutoff: "2016-01-02"},
		{latest: "2010-12-31", cutoff: "2009-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.latest, func(t *testing.T) {
			w, err := referenceWindow(tt.latest)
			if err != nil {
				t.Fatalf("referenceWindow(%q): %v", tt.latest, err)
			}
			if w.Cutoff != tt.cutoff {
				t.Errorf("Cutoff = %q, want %q", w.Cutoff, tt.cutoff)
			}
			if got := w.Latest.Format(dateLayout); got != tt.latest {
				t.Errorf("Latest = %q, want %q", got, tt.latest)
			}
		})
	}
}

func TestResolveReferenceWindow_errors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		_, err := ResolveReferenceWindow(ctx, &mockRepo{})
		if !errors.Is(err, ErrNoMeasurements) {
			t.Fatalf("err = %v, want ErrNoMeasurements", err)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("disk I/O error")
		_, err := ResolveReferenceWindow(ctx, &mockRepo{latestErr: boom})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want wrapped %v", err, boom)
		}
	})

	t.Run("unparseable date", func(t *testing.T) {
		_, err := ResolveReferenceWindow(ctx, &mockRepo{latest: "23/08/2017", latestOK: true})
		if err == nil {
			t.Fatal("err = nil, want parse error")
		}
	})
}

func TestNew_cutoffIsFixedForServiceLifetime(t *testing.T) {
	repo := &mockRepo{latest: "2017-08-23", latestOK: true}
	svc, err := New(context.Background(), repo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := svc.Precipitation(context.Background()); err != nil {
		t.Fatalf("Precipitation: %v", err)
	}
	// New data arriving in the store must not move the window.
	repo.latest = "2018-01-01"
	if _, err := svc.Precipitation(context.Background()); err != nil {
		t.Fatalf("Precipitation: %v", err)
	}

	for i, since := range repo.gotSince {
		if since != "2016-08-23" {
			t.Errorf("call %d used cutoff %q, want 2016-08-23", i, since)
		}
	}
	if svc.Window().Cutoff != "2016-08-23" {
		t.Errorf("Window().Cutoff = %q", svc.Window().Cutoff)
	}
}

func TestMostActiveObservations(t *testing.T) {
	ctx := context.Background()
	window := types.ReferenceWindow{Cutoff: "2016-08-23"}

	t.Run("queries the most active station from the cutoff", func(t *testing.T) {
		tobs := 77.0
		repo := &mockRepo{
			mostActive:   "USC00519281",
			mostActiveOK: true,
			observations: []types.TemperatureObservation{{Date: "2016-08-23", Tobs: &tobs}},
		}
		got, err := NewService(repo, window).MostActiveObservations(ctx)
		if err != nil {
			t.Fatalf("MostActiveObservations: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d rows, want 1", len(got))
		}
		if repo.gotStation != "USC00519281" || repo.gotSince[0] != "2016-08-23" {
			t.Errorf("queried station=%q since=%v", repo.gotStation, repo.gotSince)
		}
	})

	t.Run("no measurements", func(t *testing.T) {
		got, err := NewService(&mockRepo{}, window).MostActiveObservations(ctx)
		if err != nil || got != nil {
			t.Fatalf("MostActiveObservations = %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("locked")
		_, err := NewService(&mockRepo{mostActiveErr: boom}, window).MostActiveObservations(ctx)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want wrapped %v", err, boom)
		}
	})
}

func TestStats_passDatesThroughUnvalidated(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, types.ReferenceWindow{Cutoff: "2016-08-23"})
	ctx := context.Background()

	if _, err := svc.StatsFrom(ctx, "yesterday"); err != nil {
		t.Fatalf("StatsFrom: %v", err)
	}
	if repo.gotStart != "yesterday" {
		t.Errorf("start = %q, want yesterday", repo.gotStart)
	}

	if _, err := svc.StatsBetween(ctx, "2017-08-23", "2017-08-22"); err != nil {
		t.Fatalf("StatsBetween: %v", err)
	}
	if repo.gotStart != "2017-08-23" || repo.gotEnd != "2017-08-22" {
		t.Errorf("range = %q..%q", repo.gotStart, repo.gotEnd)
	}
}

func TestService_wrapsStoreErrors(t *testing.T) {
	boom := errors.New("database is locked")
	svc := NewService(&mockRepo{err: boom}, types.ReferenceWindow{Cutoff: "2016-08-23"})
	ctx := context.Background()

	if _, err := svc.Precipitation(ctx); !errors.Is(err, boom) {
		t.Errorf("Precipitation err = %v", err)
	}
	if _, err := svc.Stations(ctx); !errors.Is(err, boom) {
		t.Errorf("Stations err = %v", err)
	}
	if _, err := svc.StatsFrom(ctx, "2017-01-01"); !errors.Is(err, boom) {
		t.Errorf("StatsFrom err = %v", err)
	}
	if _, err := svc.StatsBetween(ctx, "2017-01-01", "2017-02-01"); !errors.Is(err, boom) {
		t.Errorf("StatsBetween err = %v", err)
	}
}

func TestNew_sampleDataset(t *testing.T) {
	repo := repository.NewRepository(dbtest.Open(t, dbtest.Sample(t)))
	svc, err := New(context.Background(), repo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if svc.Window().Cutoff != "2016-08-23" {
		t.Fatalf("Cutoff = %q, want 2016-08-23", svc.Window().Cutoff)
	}

	rows, err := svc.Precipitation(context.Background())
	if err != nil {
		t.Fatalf("Precipitation: %v", err)
	}
	for _, r := range rows {
		if r.Date < svc.Window().Cutoff {
			t.Errorf("row %s before cutoff", r.Date)
		}
	}

	obs, err := svc.MostActiveObservations(context.Background())
	if err != nil {
		t.Fatalf("MostActiveObservations: %v", err)
	}
	if len(obs) != 4 {
		t.Errorf("observations = %d, want 4", len(obs))
	}
}
