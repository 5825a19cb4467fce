package weather

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// payload mirrors the upstream response shape. Required fields are pointers
// so that absence is distinguishable from a zero value.
type payload struct {
	Name *string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *int     `json:"humidity"`
		Pressure *int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Dt *int64 `json:"dt"`
}

// Extract maps a raw provider payload into a Record. It is pure and
// deterministic: identical payloads always yield identical records. A payload
// lacking any required field fails closed, naming the field.
func Extract(raw json.RawMessage) (*Record, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, NewError(KindMalformedResponse, err, "undecodable weather payload")
	}

	switch {
	case p.Name == nil || *p.Name == "":
		return nil, MissingField("name")
	case p.Main == nil || p.Main.Temp == nil:
		return nil, MissingField("temperature")
	case p.Main.Humidity == nil:
		return nil, MissingField("humidity")
	case p.Main.Pressure == nil:
		return nil, MissingField("pressure")
	case len(p.Weather) == 0 || p.Weather[0].Description == "":
		return nil, MissingField("condition")
	}

	rec := &Record{
		City:        *p.Name,
		Temperature: *p.Main.Temp,
		Humidity:    *p.Main.Humidity,
		Pressure:    *p.Main.Pressure,
		Condition:   p.Weather[0].Description,
		ObservedAt:  ObservedAtUnavailable,
		RawPayload:  raw,
	}

	// Wind data is frequently absent for inland stations; default to calm.
	if p.Wind.Speed != nil {
		rec.WindSpeed = *p.Wind.Speed
	}

	if p.Dt != nil {
		rec.ObservedAt = time.Unix(*p.Dt, 0).Format("2006-01-02 15:04:05")
	}

	if err := validate.Struct(rec); err != nil {
		return nil, NewError(KindMalformedResponse, err, "weather payload violates record constraints")
	}
	return rec, nil
}
