package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"debtop/pkg/cache"
	"debtop/pkg/errors"
	"debtop/pkg/mirror"
	"debtop/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // redis address for the shared cache, empty for file cache
	noCache  bool   // disable result caching
	cacheTTL time.Duration
}

// newServeCmd creates the serve command, exposing rankings as a JSON API.
//
// Endpoints:
//   - GET /api/v1/top?arch=amd64&n=10[&mirror=...&dist=...&component=...]
//   - GET /healthz
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve package rankings as a JSON API",
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared result cache (host:port)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", cache.DefaultTTL, "result cache entry lifetime")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, nil, logger)
	srv := &http.Server{
		Addr:    opts.addr,
		Handler: newRouter(runner, logger, opts.cacheTTL),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Serving rankings on %s", opts.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// serveCache builds the shared result cache for the API: redis when
// configured, otherwise the standard file cache.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newRouter builds the HTTP API around a pipeline runner.
func newRouter(runner *pipeline.Runner, logger *log.Logger, cacheTTL time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/v1/top", func(w http.ResponseWriter, req *http.Request) {
		handleTop(w, req, runner, cacheTTL)
	})

	return r
}

// topResponse is the JSON body of /api/v1/top.
type topResponse struct {
	Locator mirror.Locator `json:"locator"`
	*pipeline.Result
	GeneratedAt time.Time `json:"generated_at"`
}

// errorResponse is the JSON body of API failures.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handleTop(w http.ResponseWriter, req *http.Request, runner *pipeline.Runner, cacheTTL time.Duration) {
	q := req.URL.Query()

	n := 0
	if raw := q.Get("n"); raw != "" {
		var err error
		if n, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "n must be an integer, got %q", raw))
			return
		}
	}

	opts := pipeline.Options{
		Locator: mirror.Locator{
			Mirror:    q.Get("mirror"),
			Dist:      q.Get("dist"),
			Component: q.Get("component"),
			Arch:      q.Get("arch"),
		},
		TopN:     n,
		CacheTTL: cacheTTL,
	}
	opts.Locator = opts.Locator.WithDefaults()

	res, err := runner.Run(req.Context(), opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, topResponse{
		Locator:     opts.Locator,
		Result:      res,
		GeneratedAt: time.Now().UTC(),
	})
}

// statusFor maps pipeline error codes to HTTP statuses: input problems
// are the client's fault, mirror trouble is upstream, everything else is
// ours.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidArch:
		return http.StatusBadRequest
	case errors.ErrCodeFetch:
		return http.StatusBadGateway
	case errors.ErrCodeDecompress, errors.ErrCodeEncoding:
		return http.StatusBadGateway
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}
