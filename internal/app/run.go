package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"climate-api/internal/config"
	db "climate-api/internal/db"
	httpapi "climate-api/internal/httpapi"
	climate "climate-api/internal/modules/climate"
	climateviews "climate-api/internal/modules/climate/views"
)

const shutdownTimeout = 10 * time.Second

// Run opens the dataset, checks it, and serves the API until ctx is done.
// Any failure before the listener starts is returned and the process should exit.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"corsAllowedOrigins", cfg.CORSAllowedOrigins,
		"strictDates", cfg.StrictDates,
		"dbDriver", cfg.Driver,
		"dbDSNSet", cfg.DSN != "",
		"sqlitePath", cfg.Path,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"dbLogSQL", cfg.LogSQL,
	)

	dbConn, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := db.Bind(ctx, dbConn, db.ClimateTables...); err != nil {
		return fmt.Errorf("bind schema: %w", err)
	}
	slog.Info("database schema bound")

	if err := climateviews.LoadTemplates(); err != nil {
		return err
	}

	mux := httpapi.NewMux(dbConn)
	if err := climate.RegisterFeature(ctx, mux, dbConn, cfg.StrictDates); err != nil {
		return fmt.Errorf("register climate routes: %w", err)
	}

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
