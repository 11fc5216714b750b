package service

import (
	"context"
	"fmt"
	"log/slog"

	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/types"
)

// Service answers the API's questions against the repository using a
// reference window that was resolved once and never refreshed.
type Service struct {
	repository repository.ClimateRepository
	window     types.ReferenceWindow
}

func NewService(repository repository.ClimateRepository, window types.ReferenceWindow) *Service {
	return &Service{repository: repository, window: window}
}

// New resolves the reference window and returns a Service bound to it.
func New(ctx context.Context, repository repository.ClimateRepository) (*Service, error) {
	window, err := ResolveReferenceWindow(ctx, repository)
	if err != nil {
		return nil, err
	}
	slog.Info("reference window resolved",
		"latest", window.Latest.Format(dateLayout),
		"cutoff", window.Cutoff,
	)
	return NewService(repository, window), nil
}

func (s *Service) Window() types.ReferenceWindow {
	return s.window
}

// Precipitation returns every (date, prcp) row on or after the cutoff.
func (s *Service) Precipitation(ctx context.Context) ([]types.Precipitation, error) {
	rows, err := s.repository.PrecipitationSince(ctx, s.window.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("precipitation since %s: %w", s.window.Cutoff, err)
	}
	return rows, nil
}

func (s *Service) Stations(ctx context.Context) ([]string, error) {
	ids, err := s.repository.StationIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("stations: %w", err)
	}
	return ids, nil
}

// MostActiveObservations returns the temperature observations on or after the
// cutoff for the station with the most measurement rows overall.
func (s *Service) MostActiveObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	stationID, ok, err := s.repository.MostActiveStation(ctx)
	if err != nil {
		return nil, fmt.Errorf("most active station: %w", err)
	}
	if !ok {
		return nil, nil
	}
	rows, err := s.repository.TemperatureObservations(ctx, stationID, s.window.Cutoff)
	if err != nil {
		return nil, fmt.Errorf("temperature observations for %s: %w", stationID, err)
	}
	return rows, nil
}

func (s *Service) StatsFrom(ctx context.Context, start string) (types.TemperatureStats, error) {
	stats, err := s.repository.TemperatureStatsFrom(ctx, start)
	if err != nil {
		return types.TemperatureStats{}, fmt.Errorf("temperature stats from %q: %w", start, err)
	}
	return stats, nil
}

func (s *Service) StatsBetween(ctx context.Context, start, end string) (types.TemperatureStats, error) {
	stats, err := s.repository.TemperatureStatsBetween(ctx, start, end)
	if err != nil {
		return types.TemperatureStats{}, fmt.Errorf("temperature stats %q..%q: %w", start, end, err)
	}
	return stats, nil
}
