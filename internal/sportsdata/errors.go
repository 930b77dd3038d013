package sportsdata

import (
	"errors"
	"fmt"
)

// ErrCircuitOpen is returned when the upstream API circuit breaker has
// tripped and requests are being rejected locally.
var ErrCircuitOpen = errors.New("sports api circuit breaker open")

// ErrStatsUnavailable is returned when the API has no statistics for a
// fixture yet; they typically appear some minutes after full time.
var ErrStatsUnavailable = errors.New("fixture statistics not yet available")

// APIError represents a non-success response from the sports API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sports api %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
}
