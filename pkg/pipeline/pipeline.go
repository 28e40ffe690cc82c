// Package pipeline wires fetch, decompression, parsing, and ranking into a
// single call.
//
// A [Runner] drives one complete run: open the index byte stream (mirror
// fetch or local file), stream it through the line source and parser,
// aggregate counts, and rank the top N. Runs are independent; a Runner is
// stateless apart from its cache and logger, so multiple goroutines can
// share one Runner as long as each call gets its own Options.
//
// Errors carry codes from debtop/pkg/errors so callers can distinguish an
// unreachable mirror (FETCH_ERROR) from a corrupt index
// (DECOMPRESSION_ERROR, ENCODING_ERROR). Malformed individual lines are
// absorbed: they are logged at debug level and skipped, never escalated.
package pipeline

import (
	"time"

	"debtop/pkg/contents"
	"debtop/pkg/errors"
	"debtop/pkg/mirror"
)

// DefaultTopN matches the CLI default of ten rows.
const DefaultTopN = 10

// Options configures one pipeline run.
type Options struct {
	// Locator names the remote index. Ignored when Path is set.
	Locator mirror.Locator

	// Path points at a local Contents-*.gz for offline runs.
	Path string

	// TopN is the number of rows to return; defaults to DefaultTopN.
	TopN int

	// Refresh bypasses the result cache for this run. The fresh result
	// still updates the cache.
	Refresh bool

	// CacheTTL overrides the cache's default entry lifetime.
	CacheTTL time.Duration
}

// ValidateAndSetDefaults normalizes opts in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top-N must be positive, got %d", o.TopN)
	}
	if o.Path != "" {
		return nil
	}
	o.Locator = o.Locator.WithDefaults()
	return o.Locator.Validate()
}

// source names the input for log lines: the locator or the local path.
func (o *Options) source() string {
	if o.Path != "" {
		return o.Path
	}
	return o.Locator.String()
}

// Stats describes what one run processed.
type Stats struct {
	Lines     int           `json:"lines"`      // decoded lines consumed
	Skipped   int           `json:"skipped"`    // lines classified as header/blank/malformed
	Dropped   int           `json:"dropped"`    // undecodable lines discarded by the source
	Packages  int           `json:"packages"`   // distinct packages counted
	FetchTime time.Duration `json:"fetch_time"` // time to open the byte stream
	ParseTime time.Duration `json:"parse_time"` // time to stream, parse, and rank
}

// Result is the outcome of one run.
type Result struct {
	// RunID tags the run in logs and API responses.
	RunID string `json:"run_id"`

	// Entries is the ranked top-N, count descending, names ascending on ties.
	Entries []contents.Entry `json:"entries"`

	Stats Stats `json:"stats"`

	// CacheHit reports whether Entries came from the result cache.
	CacheHit bool `json:"cache_hit"`
}
