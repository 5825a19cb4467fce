package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"weatherlog/internal/weather/providers"
)

// PlaceholderAPIKey is the value shipped in setup docs; it is treated the
// same as a missing key.
const PlaceholderAPIKey = "YOUR_API_KEY_HERE"

// ErrMissingAPIKey is returned when no usable API key is configured.
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is missing or still the placeholder")

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// DBPath is the SQLite file backing the weather log.
	DBPath string

	// HTTPTimeout bounds every outbound weather api call.
	HTTPTimeout time.Duration

	Port string

	// TrackCities are periodically observed and logged in serve mode.
	TrackCities   []string
	TrackInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" || cfg.OpenWeatherAPIKey == PlaceholderAPIKey {
		return nil, ErrMissingAPIKey
	}

	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultBaseURL)
	cfg.DBPath = getenvDefault("WEATHER_DB_PATH", "weather_data.db")
	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.TrackCities = splitCities(os.Getenv("TRACK_CITIES"))

	interval, err := getenvDuration("TRACK_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.TrackInterval = interval

	return cfg, nil
}

func splitCities(raw string) []string {
	var cities []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
