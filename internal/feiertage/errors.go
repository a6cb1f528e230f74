package feiertage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable marks transport-level failures (connection refused,
	// DNS, timeout). Surfaced to callers as 502.
	ErrUnreachable = errors.New("feiertage-api.de unreachable")

	// ErrMalformed marks responses that are not valid JSON or not a
	// JSON object. Surfaced to callers as 502.
	ErrMalformed = errors.New("unexpected response from feiertage-api.de")
)

// StatusError is returned when the upstream answered with a non-200
// status. The status code is propagated verbatim to the caller.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feiertage-api.de returned status %d", e.Code)
}
