package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"debtop/pkg/cache"
	"debtop/pkg/mirror"
	"debtop/pkg/pipeline"
)

// largeOutputThreshold is the row count above which an interactive run
// gets a redirection hint.
const largeOutputThreshold = 50

// topOpts holds the command-line flags for the top command.
type topOpts struct {
	mirror    string // mirror base URL
	dist      string // distribution name
	component string // repository component
	top       int    // number of rows to report
	file      string // local Contents-*.gz instead of a fetch
	output    string // output file path (stdout if empty)
	refresh   bool   // bypass the result cache
	noCache   bool   // disable the result cache entirely
	plain     bool   // force plain table output
}

// newTopCmd creates the top command.
//
// The architecture argument may be omitted on a terminal, in which case
// an interactive picker is shown. Defaults for mirror, dist, component,
// and row count come from ~/.config/debtop/config.toml when present.
func newTopCmd() *cobra.Command {
	opts := topOpts{}

	cmd := &cobra.Command{
		Use:   "top [arch]",
		Short: "Report the packages with the most files",
		Long: `Download the Contents index for an architecture and report the top-N
packages by number of installed files.

Examples:
  debtop top amd64
  debtop top arm64 --top 25
  debtop top amd64 --dist bookworm --component contrib
  debtop top --file ./Contents-amd64.gz
  debtop top amd64 -o ranking.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			arch := ""
			if len(args) == 1 {
				arch = args[0]
			}
			return runTop(c.Context(), &opts, arch)
		},
	}

	cmd.Flags().StringVar(&opts.mirror, "mirror", "", "base Debian mirror URL")
	cmd.Flags().StringVar(&opts.dist, "dist", "", "distribution name (default stable)")
	cmd.Flags().StringVar(&opts.component, "component", "", "repository component (default main)")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "number of packages to display (default 10)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "parse a local Contents-*.gz instead of downloading")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the result cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain table output without styling")

	return cmd
}

func runTop(ctx context.Context, opts *topOpts, arch string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	applyConfig(opts, cfg)

	if arch == "" && opts.file == "" {
		arch, err = pickArch()
		if err != nil {
			return err
		}
	}

	popts := pipeline.Options{
		Locator: mirror.Locator{
			Mirror:    opts.mirror,
			Dist:      opts.dist,
			Component: opts.component,
			Arch:      arch,
		},
		Path:    opts.file,
		TopN:    opts.top,
		Refresh: opts.refresh,
	}

	if opts.file == "" {
		logger.Infof("Fetching %s", popts.Locator.WithDefaults().URL())
		if arch != "" && !mirror.Known(arch) {
			logger.Warnf("architecture %q is not a known Debian port; the mirror may not carry it", arch)
		}
	} else {
		logger.Infof("Parsing %s", opts.file)
	}

	runner := pipeline.NewRunner(openCache(opts, logger), nil, logger)
	defer runner.Cache.Close()

	prog := newProgress(logger)
	res, err := runner.Run(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ranked %d of %d packages", len(res.Entries), res.Stats.Packages))

	if len(res.Entries) == 0 {
		return fmt.Errorf("no packages found; check that the architecture %q is correct", arch)
	}

	return writeRanking(res, opts)
}

// applyConfig fills unset flags from the config file.
func applyConfig(opts *topOpts, cfg config) {
	if opts.mirror == "" {
		opts.mirror = cfg.Mirror
	}
	if opts.dist == "" {
		opts.dist = cfg.Dist
	}
	if opts.component == "" {
		opts.component = cfg.Component
	}
	if opts.top == 0 && cfg.Top > 0 {
		opts.top = cfg.Top
	}
}

// openCache builds the result cache for CLI runs: a file cache under
// ~/.cache/debtop, or a null cache with --no-cache or when the home
// directory is unavailable.
func openCache(opts *topOpts, logger interface{ Debugf(string, ...any) }) cache.Cache {
	if opts.noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.DefaultDir()
	if err == nil {
		var c cache.Cache
		if c, err = cache.NewFileCache(dir); err == nil {
			return c
		}
	}
	logger.Debugf("result cache disabled: %v", err)
	return cache.NewNullCache()
}

// writeRanking renders the result to stdout or the requested file.
// Styled output is reserved for interactive terminals.
func writeRanking(res *pipeline.Result, opts *topOpts) error {
	out, toFile, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	interactive := !toFile && isatty.IsTerminal(os.Stdout.Fd())
	if interactive && len(res.Entries) > largeOutputThreshold {
		printWarning("displaying %d packages; consider piping to 'less' or redirecting to a file", len(res.Entries))
	}

	if interactive && !opts.plain {
		renderStyled(out, res.Entries)
		if res.CacheHit {
			printDetail("cached result; use --refresh to re-download")
		}
		return nil
	}
	return renderPlain(out, res.Entries)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path and whether it is a
// file. If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, bool, error) {
	if path == "" {
		return nopCloser{os.Stdout}, false, nil
	}
	f, err := os.Create(path)
	return f, true, err
}
