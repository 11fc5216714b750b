package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/types"
)

const (
	dateLayout = "2006-01-02"
	// windowDays is a fixed day count, not a calendar year.
	windowDays = 365
)

// ErrNoMeasurements means the measurement table is empty, so no reference
// window can be derived.
var ErrNoMeasurements = errors.New("no measurements in store")

// ResolveReferenceWindow reads the latest measurement date and derives the
// cutoff 365 days earlier.
func ResolveReferenceWindow(ctx context.Context, repo repository.ClimateRepository) (types.ReferenceWindow, error) {
	latestStr, ok, err := repo.LatestDate(ctx)
	if err != nil {
		return types.ReferenceWindow{}, fmt.Errorf("latest measurement date: %w", err)
	}
	if !ok {
		return types.ReferenceWindow{}, ErrNoMeasurements
	}
	return referenceWindow(latestStr)
}

func referenceWindow(latestStr string) (types.ReferenceWindow, error) {
	latest, err := time.Parse(dateLayout, latestStr)
	if err != nil {
		return types.ReferenceWindow{}, fmt.Errorf("parse latest measurement date %q: %w", latestStr, err)
	}
	return types.ReferenceWindow{
		Latest: latest,
		Cutoff: latest.AddDate(0, 0, -windowDays).Format(dateLayout),
	}, nil
}
