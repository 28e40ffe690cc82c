package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"debtop/pkg/cache"
	"debtop/pkg/contents"
	"debtop/pkg/mirror"
	"debtop/pkg/observability"
)

// ctxCheckInterval is how many lines are parsed between cancellation
// checks. Parsing is pure CPU work; without this a cancelled run would
// only notice at the next network read.
const ctxCheckInterval = 4096

// cacheKeyPrefix namespaces ranking entries in the shared cache.
const cacheKeyPrefix = "top"

// Runner executes pipeline runs with result caching.
// Both the CLI and the serve API use this to avoid duplicating logic.
type Runner struct {
	Cache   cache.Cache
	Fetcher *mirror.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil fetcher
// gets the standard mirror client, a nil logger gets log.Default().
func NewRunner(c cache.Cache, f *mirror.Fetcher, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if f == nil {
		f = mirror.NewFetcher()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Fetcher: f, Logger: logger}
}

// cachedResult is the JSON shape stored in the result cache.
type cachedResult struct {
	Entries []contents.Entry `json:"entries"`
	Stats   Stats            `json:"stats"`
}

// Run executes one complete fetch → decompress → parse → rank pass and
// returns the ranked top-N. On any error, including cancellation, no
// partial result is returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])
	start := time.Now()

	observability.Pipeline().OnRunStart(ctx, opts.source())

	// Local files are cheap to re-parse; only remote runs consult the cache.
	key := cache.Key(cacheKeyPrefix, opts.Locator, opts.TopN)
	if opts.Path == "" && !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.RunID = runID
			logger.Debug("result cache hit", "source", opts.source(), "packages", res.Stats.Packages)
			observability.Pipeline().OnRunComplete(ctx, opts.source(), res.Stats.Packages, time.Since(start), nil)
			return res, nil
		}
	}

	res, err := r.execute(ctx, opts, logger)
	observability.Pipeline().OnRunComplete(ctx, opts.source(), statsPackages(res), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	res.RunID = runID

	if opts.Path == "" {
		r.store(ctx, key, res, opts.CacheTTL)
	}
	return res, nil
}

func (r *Runner) execute(ctx context.Context, opts Options, logger *log.Logger) (*Result, error) {
	fetchStart := time.Now()
	body, err := r.open(ctx, opts)
	observability.Pipeline().OnFetchComplete(ctx, opts.source(), time.Since(fetchStart), err)
	if err != nil {
		return nil, err
	}
	fetchTime := time.Since(fetchStart)

	src, err := contents.NewLineSource(body)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	src.WarnFunc = func(line []byte) {
		logger.Debug("dropping undecodable line", "bytes", len(line))
	}

	parseStart := time.Now()
	counter := contents.NewCounter()
	skipped := 0
	for src.Next() {
		if src.Lines()%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		refs, ok := contents.ParseLine(src.Line())
		if !ok {
			skipped++
			continue
		}
		counter.Record(refs)
	}
	if err := src.Err(); err != nil {
		return nil, err
	}

	entries := counter.TopN(opts.TopN)
	parseTime := time.Since(parseStart)

	logger.Info("parsed index",
		"source", opts.source(),
		"lines", src.Lines(),
		"packages", counter.Len(),
		"fetch", fetchTime.Round(time.Millisecond),
		"parse", parseTime.Round(time.Millisecond))

	return &Result{
		Entries: entries,
		Stats: Stats{
			Lines:     src.Lines(),
			Skipped:   skipped,
			Dropped:   src.Dropped(),
			Packages:  counter.Len(),
			FetchTime: fetchTime,
			ParseTime: parseTime,
		},
	}, nil
}

// open acquires the compressed byte stream from the mirror or local disk.
func (r *Runner) open(ctx context.Context, opts Options) (io.ReadCloser, error) {
	if opts.Path != "" {
		return mirror.OpenFile(opts.Path)
	}
	return r.Fetcher.Fetch(ctx, opts.Locator)
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "err", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, cacheKeyPrefix)
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyPrefix)
	return &Result{Entries: cached.Entries, Stats: cached.Stats, CacheHit: true}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, ttl time.Duration) {
	data, err := json.Marshal(cachedResult{Entries: res.Entries, Stats: res.Stats})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyPrefix, len(data))
}

func statsPackages(res *Result) int {
	if res == nil {
		return 0
	}
	return res.Stats.Packages
}
