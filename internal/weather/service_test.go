package weather

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	raw   json.RawMessage
	err   error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context, city string) (json.RawMessage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

type stubLog struct {
	entries   []Entry
	appendErr error
}

func (l *stubLog) Append(ctx context.Context, rec *Record) (*Entry, error) {
	if l.appendErr != nil {
		return nil, l.appendErr
	}
	e := Entry{
		ID:       int64(len(l.entries) + 1),
		Record:   *rec,
		LoggedAt: "2026-01-02T15:04:05Z",
	}
	l.entries = append(l.entries, e)
	return &e, nil
}

func (l *stubLog) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var out []Entry
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}

func TestLookupRejectsEmptyCity(t *testing.T) {
	source := &stubSource{}
	svc := NewService(source, &stubLog{})

	for _, city := range []string{"", "   ", "\t\n"} {
		_, err := svc.Lookup(context.Background(), city)
		require.Error(t, err)
		assert.Equal(t, KindInvalidInput, KindOf(err))
	}

	// The source must never see an empty city name.
	assert.Zero(t, source.calls)
}

func TestLookupTrimsCityBeforeFetch(t *testing.T) {
	source := &stubSource{raw: parisPayload(t, nil)}
	svc := NewService(source, &stubLog{})

	rec, err := svc.Lookup(context.Background(), "  Paris  ")
	require.NoError(t, err)
	assert.Equal(t, "Paris", rec.City)
	assert.Equal(t, 1, source.calls)
}

func TestObserveConnectivityFailureWritesNothing(t *testing.T) {
	source := &stubSource{err: NewError(KindConnectivity, nil, "connection timed out")}
	weatherLog := &stubLog{}
	svc := NewService(source, weatherLog)

	_, _, err := svc.Observe(context.Background(), "Nowhereville")
	require.Error(t, err)
	assert.Equal(t, KindConnectivity, KindOf(err))
	assert.Empty(t, weatherLog.entries)
}

func TestObserveAppendsEntry(t *testing.T) {
	source := &stubSource{raw: parisPayload(t, nil)}
	weatherLog := &stubLog{}
	svc := NewService(source, weatherLog)

	rec, entry, err := svc.Observe(context.Background(), "Paris")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, rec.City, entry.City)
	assert.Len(t, weatherLog.entries, 1)
}

func TestObserveAppendFailureStillReturnsRecord(t *testing.T) {
	source := &stubSource{raw: parisPayload(t, nil)}
	weatherLog := &stubLog{appendErr: NewError(KindStorage, nil, "disk full")}
	svc := NewService(source, weatherLog)

	rec, entry, err := svc.Observe(context.Background(), "Paris")
	require.Error(t, err)
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Nil(t, entry)
	require.NotNil(t, rec)
	assert.Equal(t, "Paris", rec.City)
}
