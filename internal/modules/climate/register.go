package climate

import (
	"context"
	"database/sql"
	"net/http"

	"climate-api/internal/modules/climate/controller"
	"climate-api/internal/modules/climate/repository"
	"climate-api/internal/modules/climate/service"
)

// RegisterFeature resolves the reference window against db and mounts the
// index and /api/v1.0 routes on mux. It fails when the store holds no
// measurements.
func RegisterFeature(ctx context.Context, mux *http.ServeMux, db *sql.DB, strictDates bool) error {
	climateRepository := repository.NewRepository(db)
	climateService, err := service.New(ctx, climateRepository)
	if err != nil {
		return err
	}
	climateController := controller.NewClimateController(climateService, strictDates)
	climateController.RegisterRoutes(mux)
	return nil
}
