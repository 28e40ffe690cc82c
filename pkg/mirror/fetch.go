package mirror

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"debtop/pkg/errors"
	"debtop/pkg/httputil"
	"debtop/pkg/observability"
)

// Fetcher retrieves Contents indices over HTTP. The response body is
// streamed to the caller, never buffered whole: a Contents index can run
// to hundreds of megabytes decompressed and the pipeline only needs one
// pass.
type Fetcher struct {
	client *http.Client

	retryAttempts int
	retryDelay    time.Duration
}

// NewFetcher creates a Fetcher with the standard download client.
func NewFetcher() *Fetcher {
	return NewFetcherWithClient(httputil.NewClient())
}

// NewFetcherWithClient creates a Fetcher using the given client.
// Used by tests to point at an httptest server with short timeouts.
func NewFetcherWithClient(c *http.Client) *Fetcher {
	return &Fetcher{client: c, retryAttempts: 3, retryDelay: time.Second}
}

// WithRetry overrides the retry schedule and returns the fetcher.
func (f *Fetcher) WithRetry(attempts int, delay time.Duration) *Fetcher {
	f.retryAttempts = attempts
	f.retryDelay = delay
	return f
}

// Fetch opens the index named by loc and returns its compressed byte
// stream. The caller owns the returned ReadCloser and must close it on
// every path. Transient failures (transport errors, 5xx) are retried with
// exponential backoff; all HTTP failures surface as FETCH_ERROR. The
// request honors ctx, so a caller-initiated cancel aborts the download
// and releases the connection.
func (f *Fetcher) Fetch(ctx context.Context, loc Locator) (io.ReadCloser, error) {
	loc = loc.WithDefaults()
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	rawURL := loc.URL()
	host, path := splitURL(rawURL)

	var body io.ReadCloser
	err := httputil.Retry(ctx, f.retryAttempts, f.retryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFetch, err, "building request for %s", rawURL)
		}

		observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)
		start := time.Now()

		resp, err := f.client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, host, path, err)
			return &httputil.RetryableError{
				Err: errors.Wrap(errors.ErrCodeFetch, err, "could not reach mirror %s", loc.Mirror),
			}
		}
		observability.HTTP().OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

		if err := checkStatus(resp.StatusCode, loc); err != nil {
			resp.Body.Close()
			return err
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// OpenFile opens an already-downloaded Contents-*.gz for offline runs.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "no such file: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFetch, err, "opening %s", path)
	}
	return f, nil
}

func checkStatus(code int, loc Locator) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeFetch,
			"index not found at %s (check the architecture %q and distribution %q)",
			loc.URL(), loc.Arch, loc.Dist)
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeFetch, "mirror returned status %d for %s", code, loc.URL()),
		}
	default:
		return errors.New(errors.ErrCodeFetch, "mirror returned status %d for %s", code, loc.URL())
	}
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, ""
	}
	return u.Host, u.Path
}
