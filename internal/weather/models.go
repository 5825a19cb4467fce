package weather

import (
	"encoding/json"
)

// ObservedAtUnavailable is the observed-at value used when the upstream
// payload carries no observation timestamp.
const ObservedAtUnavailable = "unavailable"

// Record is the normalized, validated view of one weather observation.
// A Record is never mutated after extraction.
type Record struct {
	City        string  `json:"city" validate:"required"`
	Temperature float64 `json:"temperatureC"`
	Humidity    int     `json:"humidityPercent" validate:"gte=0,lte=100"`
	Pressure    int     `json:"pressureHpa"`
	WindSpeed   float64 `json:"windSpeedMs" validate:"gte=0"`
	Condition   string  `json:"condition" validate:"required"`

	// ObservedAt is the source-reported observation time rendered as a local
	// time string, or ObservedAtUnavailable. It is distinct from the logging
	// timestamp assigned at append time.
	ObservedAt string `json:"observedAt"`

	// RawPayload is the verbatim upstream response, retained for the log row.
	RawPayload json.RawMessage `json:"-"`
}

// Entry is a Record plus the identity assigned when it was persisted.
type Entry struct {
	ID int64 `json:"id"`
	Record
	// LoggedAt is the wall-clock time of the insert, RFC3339.
	LoggedAt string `json:"loggedAt"`
}
