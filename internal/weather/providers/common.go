package providers

import (
	"errors"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

var errServerError = errors.New("server error")

// response carries a completed upstream exchange out of the circuit breaker.
type response struct {
	status int
	body   []byte
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// upstreamCode normalizes the body-level status code, which the upstream
// encodes as a number on success and a quoted string on error.
func upstreamCode(v any) (int, bool) {
	switch code := v.(type) {
	case float64:
		return int(code), true
	case string:
		n, err := strconv.Atoi(code)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
