package controller

import (
	"log/slog"
	"net/http"

	"climate-api/internal/modules/climate/views"
	"climate-api/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	utils.WriteHTML(w, http.StatusOK, views.RenderIndex)
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.Precipitation(r.Context())
	if err != nil {
		slog.Error("precipitation query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load precipitation")
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.PrecipitationByDate(rows))
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	ids, err := c.service.Stations(r.Context())
	if err != nil {
		slog.Error("stations query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load stations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.StationList(ids))
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.MostActiveObservations(r.Context())
	if err != nil {
		slog.Error("temperature observations query failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature observations")
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.ObservationList(rows))
}

func (c *climateControllerImpl) handleStatsFrom(w http.ResponseWriter, r *http.Request) {
	start := r.PathValue("start")
	if err := c.checkDates(start, ""); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := c.service.StatsFrom(r.Context(), start)
	if err != nil {
		slog.Error("temperature stats query failed", "start", start, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature stats")
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.StatsObject(stats))
}

func (c *climateControllerImpl) handleStatsBetween(w http.ResponseWriter, r *http.Request) {
	start, end := r.PathValue("start"), r.PathValue("end")
	if err := c.checkDates(start, end); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := c.service.StatsBetween(r.Context(), start, end)
	if err != nil {
		slog.Error("temperature stats query failed", "start", start, "end", end, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load temperature stats")
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.StatsObject(stats))
}
