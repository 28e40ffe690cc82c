// Package httputil provides HTTP infrastructure for the mirror client.
//
// It contains the pieces shared by anything in debtop that talks to a
// Debian mirror:
//
//   - [Retry]: automatic retry with exponential backoff
//   - [NewClient]: an http.Client with a sane timeout for index downloads
//
// Transient failures (network errors, 5xx responses) are wrapped in
// [RetryableError] by the caller so that [Retry] knows to attempt the
// operation again; anything else fails immediately. The retry schedule
// (attempt count, initial delay) is the caller's choice; the mirror
// fetcher uses 3 attempts starting at 1 second, doubling each retry.
package httputil

import (
	"net/http"
	"time"
)

// downloadTimeout bounds one whole index download. Contents indices run to
// hundreds of megabytes on slow mirrors, so this is generous compared to
// an API-call timeout.
const downloadTimeout = 10 * time.Minute

// NewClient creates an HTTP client suitable for downloading Contents
// indices from a mirror.
func NewClient() *http.Client {
	return &http.Client{Timeout: downloadTimeout}
}
