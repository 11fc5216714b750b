package views

import "climate-api/internal/modules/climate/types"

// ObservationJSON is one element of the /api/v1.0/tobs array.
type ObservationJSON struct {
	Date string   `json:"date"`
	Tobs *float64 `json:"tobs"`
}

// StatsJSON is the body of the /api/v1.0/{start}[/{end}] routes. Keys are
// emitted in sorted order, like every other object the API returns.
type StatsJSON struct {
	TAVG *float64 `json:"TAVG"`
	TMAX *float64 `json:"TMAX"`
	TMIN *float64 `json:"TMIN"`
}

// PrecipitationByDate keys precipitation by date. When several rows share a
// date the later row wins.
func PrecipitationByDate(rows []types.Precipitation) map[string]*float64 {
	out := make(map[string]*float64, len(rows))
	for _, r := range rows {
		out[r.Date] = r.Prcp
	}
	return out
}

// StationList keeps store order and never returns nil, so an empty table
// encodes as [] rather than null.
func StationList(ids []string) []string {
	out := make([]string, 0, len(ids))
	return append(out, ids...)
}

func ObservationList(rows []types.TemperatureObservation) []ObservationJSON {
	out := make([]ObservationJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, ObservationJSON{Date: r.Date, Tobs: r.Tobs})
	}
	return out
}

func StatsObject(s types.TemperatureStats) StatsJSON {
	return StatsJSON{TMIN: s.Min, TAVG: s.Avg, TMAX: s.Max}
}
