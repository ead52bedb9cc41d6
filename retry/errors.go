package retry

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// statusCoder is an interface for errors that carry an HTTP status code.
// garmin.APIError implements this interface.
type statusCoder interface {
	StatusCode() int
}

// IsTransient determines if an error is transient and should be retried:
// - Rate limits (HTTP 429)
// - Server errors (HTTP 5xx)
// - Network timeouts
// - Connection resets
// - DNS failures
//
// Authentication and client errors (4xx other than 429) are permanent:
// retrying an expired Garmin session only burns the rate budget.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		return isTransientStatusCode(sc.StatusCode())
	}

	return isTransientNetworkError(err)
}

// isTransientStatusCode checks if an HTTP status code indicates a transient error.
func isTransientStatusCode(code int) bool {
	// 429 = Rate Limited
	if code == 429 {
		return true
	}
	// 5xx = Server Errors
	if code >= 500 && code < 600 {
		return true
	}
	return false
}

// isTransientNetworkError checks for network-level transient errors.
func isTransientNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if urlErr.Err != nil && isTransientNetworkError(urlErr.Err) {
			return true
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET,
			syscall.ECONNREFUSED,
			syscall.ETIMEDOUT:
			return true
		}
	}

	// Fallback: common error message patterns from intermediaries.
	errMsg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset",
		"connection refused",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"bad gateway",
		"gateway timeout",
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
