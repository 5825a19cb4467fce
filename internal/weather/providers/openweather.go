package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"weatherlog/internal/weather"
)

// DefaultBaseURL is the OpenWeatherMap current-weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current weather from OpenWeatherMap. It implements
// weather.Source with exactly one outbound attempt per call; the circuit
// breaker only fails fast while open, it never adds attempts.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a Client over the shared HTTP client. The client's
// timeout bounds every fetch.
func NewClient(client *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
		circuit:    newCircuitBreaker("openweather"),
	}
}

// Fetch issues one GET for the given city and returns the verbatim payload.
func (c *Client) Fetch(ctx context.Context, city string) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, weather.NewError(weather.KindInternal, err, "build weather request")
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: http %d", errServerError, resp.StatusCode)
		}
		return response{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, weather.NewError(weather.KindConnectivity, err, "weather api unavailable")
		case errors.Is(err, errServerError):
			return nil, weather.NewError(weather.KindUpstream, err, "weather api is failing")
		default:
			return nil, weather.NewError(weather.KindConnectivity, err, "failed to connect to weather api")
		}
	}

	res, ok := result.(response)
	if !ok {
		return nil, weather.NewError(weather.KindInternal, nil, "unexpected result type from circuit breaker")
	}

	// The upstream reports its own status inside the body; trust it over the
	// transport-level code.
	var envelope struct {
		Cod     any    `json:"cod"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(res.body, &envelope); err != nil {
		return nil, weather.NewError(weather.KindInternal, err, "undecodable weather response (http %d)", res.status)
	}

	code, ok := upstreamCode(envelope.Cod)
	if !ok {
		return nil, weather.NewError(weather.KindInternal, nil, "weather response missing status code (http %d)", res.status)
	}
	if code != http.StatusOK {
		msg := envelope.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, weather.NewError(weather.KindUpstream, nil, "weather api error %d: %s", code, msg)
	}

	return json.RawMessage(res.body), nil
}
