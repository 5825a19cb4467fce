package weather

import (
	"context"
	"encoding/json"
)

// Source abstracts the upstream weather data provider.
type Source interface {
	// Fetch returns the raw payload for the given city. City is expected to
	// be non-empty and already trimmed by the caller.
	Fetch(ctx context.Context, city string) (json.RawMessage, error)
}

// Log is the contract the persistent weather log must satisfy.
type Log interface {
	// Append inserts one row, assigning an identifier and a logging
	// timestamp. The insert is atomic; a failure leaves no partial row.
	Append(ctx context.Context, rec *Record) (*Entry, error)

	// Recent returns up to limit entries, newest first by logging timestamp.
	// An empty log yields an empty slice, not an error.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
