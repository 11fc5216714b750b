package types

import "time"

// Precipitation is one (date, prcp) row of the measurement table. Prcp is nil
// when the station recorded no value.
type Precipitation struct {
	Date string
	Prcp *float64
}

// TemperatureObservation is one (date, tobs) row of the measurement table.
// The dataset always carries tobs, but a NULL is passed through as nil rather
// than failing the whole response.
type TemperatureObservation struct {
	Date string
	Tobs *float64
}

// TemperatureStats holds MIN/AVG/MAX of tobs over a date range. All three are
// nil when no row matched.
type TemperatureStats struct {
	Min *float64
	Avg *float64
	Max *float64
}

// ReferenceWindow is the "last 12 months" window, fixed at startup.
type ReferenceWindow struct {
	Latest time.Time
	// Cutoff is Latest minus 365 days as YYYY-MM-DD, the inclusive lower
	// bound for recent-window queries.
	Cutoff string
}
