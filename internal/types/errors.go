package types

import (
	"errors"
	"fmt"
)

// Error taxonomy for the API surface. Handlers map these onto HTTP
// statuses and the fixed error envelope; nothing below is retried
// automatically.
var (
	// ErrMissingCredential means no places directory API key is configured.
	ErrMissingCredential = errors.New("places API credential is not configured")

	// ErrTripNotFound means no stored trip exists under the requested id.
	ErrTripNotFound = errors.New("trip not found")

	// ErrMalformedTrip means a stored trip document failed to parse.
	ErrMalformedTrip = errors.New("stored trip document is malformed")
)

// UpstreamError carries a non-success response from the places directory.
// The body is logged at the call site and preserved for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("places directory returned status %d", e.StatusCode)
}
