package controller

import (
	"context"
	"net/http"

	"climate-api/internal/modules/climate/types"
)

// ClimateService is the read side the handlers depend on. *service.Service
// satisfies it.
type ClimateService interface {
	Precipitation(ctx context.Context) ([]types.Precipitation, error)
	Stations(ctx context.Context) ([]string, error)
	MostActiveObservations(ctx context.Context) ([]types.TemperatureObservation, error)
	StatsFrom(ctx context.Context, start string) (types.TemperatureStats, error)
	StatsBetween(ctx context.Context, start, end string) (types.TemperatureStats, error)
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service     ClimateService
	strictDates bool
}

// NewClimateController builds the API controller. With strictDates set,
// {start} and {end} must be YYYY-MM-DD or the request is rejected with 400.
func NewClimateController(service ClimateService, strictDates bool) ClimateController {
	return &climateControllerImpl{service: service, strictDates: strictDates}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET /api/v1.0/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/v1.0/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1.0/tobs", c.handleTobs)
	mux.HandleFunc("GET /api/v1.0/{start}", c.handleStatsFrom)
	mux.HandleFunc("GET /api/v1.0/{start}/{end}", c.handleStatsBetween)
}
