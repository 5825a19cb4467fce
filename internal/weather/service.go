package weather

import (
	"context"
	"log"
	"strings"
)

// Service orchestrates the fetch, extract, persist pipeline. Operations run
// synchronously, one city per call.
type Service struct {
	source Source
	log    Log
}

// NewService creates a new Service.
func NewService(source Source, weatherLog Log) *Service {
	return &Service{
		source: source,
		log:    weatherLog,
	}
}

// Lookup validates the city name, fetches the raw payload from the source
// and normalizes it. The record is not persisted; callers decide when to
// call Log so that a failed append never undoes work already shown.
func (s *Service) Lookup(ctx context.Context, city string) (*Record, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, NewError(KindInvalidInput, nil, "city name cannot be empty")
	}

	raw, err := s.source.Fetch(ctx, city)
	if err != nil {
		return nil, err
	}
	return Extract(raw)
}

// Log appends the record to the persistent weather log.
func (s *Service) Log(ctx context.Context, rec *Record) (*Entry, error) {
	return s.log.Append(ctx, rec)
}

// Observe runs the full pipeline for one city: lookup then append. On an
// append failure the looked-up record is still returned alongside the error.
func (s *Service) Observe(ctx context.Context, city string) (*Record, *Entry, error) {
	rec, err := s.Lookup(ctx, city)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.log.Append(ctx, rec)
	if err != nil {
		return rec, nil, err
	}

	log.Printf("logged weather for %s (entry %d)", rec.City, entry.ID)
	return rec, entry, nil
}

// Recent delegates to the underlying log.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return s.log.Recent(ctx, limit)
}
