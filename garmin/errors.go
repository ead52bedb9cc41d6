package garmin

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned when no OAuth token could be located.
var ErrNoToken = errors.New("garmin: no OAuth token found; set GARMIN_OAUTH_TOKEN or run a token exchange into the token store")

// ErrTokenExpired is returned when the stored OAuth token is past its expiry.
var ErrTokenExpired = errors.New("garmin: stored OAuth token is expired; re-authenticate to refresh the token store")

// APIError is an error response from the Garmin Connect API.
type APIError struct {
	Status int
	Path   string
	Body   string
}

// Error returns a formatted message including status and request path.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("garmin: %s returned %d: %s", e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("garmin: %s returned %d", e.Path, e.Status)
}

// StatusCode returns the HTTP status code. Satisfies the interface the
// retry package uses to classify transient errors.
func (e *APIError) StatusCode() int {
	return e.Status
}
