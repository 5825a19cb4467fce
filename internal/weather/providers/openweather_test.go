package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"weatherlog/internal/weather"
)

const successBody = `{"cod":200,"name":"Paris","main":{"temp":15.2,"humidity":60,"pressure":1012},"weather":[{"description":"clear sky"}],"wind":{"speed":3.6},"dt":1700000000}`

func TestFetchSuccess(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, successBody)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "test-key")
	raw, err := client.Fetch(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery.Get("q"); got != "Paris" {
		t.Errorf("expected q=Paris, got %q", got)
	}
	if got := gotQuery.Get("appid"); got != "test-key" {
		t.Errorf("expected appid=test-key, got %q", got)
	}
	if got := gotQuery.Get("units"); got != "metric" {
		t.Errorf("expected units=metric, got %q", got)
	}

	// The payload must come back verbatim.
	var decoded struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("payload not decodable: %v", err)
	}
	if decoded.Name != "Paris" {
		t.Errorf("expected name Paris, got %q", decoded.Name)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "test-key")
	_, err := client.Fetch(context.Background(), "Atlantis")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := weather.KindOf(err); kind != weather.KindUpstream {
		t.Fatalf("expected upstream failure, got %v: %v", kind, err)
	}
	if !strings.Contains(err.Error(), "city not found") {
		t.Errorf("expected upstream message to be carried, got %q", err.Error())
	}
}

func TestFetchTimeoutIsConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, successBody)
	}))
	defer srv.Close()

	client := NewClient(&http.Client{Timeout: 50 * time.Millisecond}, srv.URL, "test-key")
	_, err := client.Fetch(context.Background(), "Nowhereville")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := weather.KindOf(err); kind != weather.KindConnectivity {
		t.Fatalf("expected connectivity failure, got %v: %v", kind, err)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "test-key")
	_, err := client.Fetch(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := weather.KindOf(err); kind != weather.KindUpstream {
		t.Fatalf("expected upstream failure, got %v: %v", kind, err)
	}
}

func TestFetchMissingBodyStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "test-key")
	_, err := client.Fetch(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := weather.KindOf(err); kind != weather.KindInternal {
		t.Fatalf("expected internal failure, got %v: %v", kind, err)
	}
}
