// Command scout runs one product acquisition against the storefront and
// appends new unique listings to the staged corpus.
//
//	scout [flags] <search-term> <category>
//	scout -seed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/scout/catalog"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/corpus"
	"github.com/use-agent/scout/models"
	"github.com/use-agent/scout/scraper"
	"github.com/use-agent/scout/webhook"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	limit      int
	out        string
	screenshot string
	store      string
	headless   bool
	configPath string
	seed       bool
	owner      string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("scout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.limit, "limit", models.DefaultCLILimit, "maximum number of products to extract")
	fs.StringVar(&opts.out, "out", "", "corpus file or sqlite database (overrides SCOUT_OUTPUT_FILE)")
	fs.StringVar(&opts.screenshot, "screenshot", "", "diagnostics screenshot path (overrides SCOUT_SCREENSHOT_FILE)")
	fs.StringVar(&opts.store, "store", "", "corpus store: file, sqlite or postgres (overrides SCOUT_STORE)")
	fs.BoolVar(&opts.headless, "headless", true, "run the browser without a window")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (overrides SCOUT_CONFIG_FILE)")
	fs.BoolVar(&opts.seed, "seed", false, "import the staged corpus into the catalog instead of scraping")
	fs.StringVar(&opts.owner, "owner", "", "catalog owner for -seed (overrides SCOUT_CATALOG_OWNER)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: scout [flags] <search-term> <category>")
		fmt.Fprintln(stderr, `Example: scout "laptops" "electronics"`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &opts, fs, nil
}

// run is main without the process exit, returning the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	var req models.ScrapeRequest
	if !opts.seed {
		if fs.NArg() < 2 {
			fmt.Fprintln(stderr, "ERROR: Please provide a search term and a category name as arguments.")
			fs.Usage()
			return exitUsage
		}
		req, err = models.NewScrapeRequest(fs.Arg(0), fs.Arg(1), opts.limit, models.DefaultCLILimit)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			fs.Usage()
			return exitUsage
		}
	}

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFatal
	}
	config.InitLogger(cfg.Log, stderr)

	store, err := corpus.Open(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFatal
	}
	defer store.Close()

	if opts.seed {
		return seed(ctx, cfg, store, stdout, stderr)
	}

	runner := scraper.NewRunner(
		scraper.BrowserLauncher(cfg.Browser, cfg.Scraper),
		store,
		cfg.Storage.ScreenshotPath,
	)
	res, err := runner.Run(ctx, req)
	notify(cfg.Webhook, req, res, err)
	if err != nil {
		reportFailure(stderr, err)
		return exitFatal
	}

	fmt.Fprintln(stdout, res.Summary())
	return exitOK
}

// loadConfig layers explicitly set flags over the file and env config.
func loadConfig(opts *options, fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadOnto(config.CLIDefaults(), opts.configPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Storage.Path = opts.out
		case "screenshot":
			cfg.Storage.ScreenshotPath = opts.screenshot
		case "store":
			cfg.Storage.Driver = opts.store
		case "headless":
			cfg.Browser.Headless = opts.headless
		case "owner":
			cfg.Catalog.Owner = opts.owner
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seed(ctx context.Context, cfg *config.Config, store corpus.Store, stdout, stderr io.Writer) int {
	records, err := store.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFatal
	}
	if len(records) == 0 {
		fmt.Fprintln(stdout, "Corpus is empty, nothing to import.")
		return exitOK
	}

	rep, err := catalog.New(cfg.Catalog).Seed(ctx, records, cfg.Catalog.Owner)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFatal
	}
	fmt.Fprintf(stdout, "Successfully imported %d scraped products (%d failed).\n", rep.Imported, rep.Failed)
	if rep.Failed > 0 {
		return exitFatal
	}
	return exitOK
}

// reportFailure prints the run error and, when this run wrote one, where
// its screenshot is.
func reportFailure(stderr io.Writer, err error) {
	fmt.Fprintf(stderr, "ERROR [%s]: %v\n", models.CodeOf(err), err)
	if shot := models.ScreenshotOf(err); shot != "" {
		fmt.Fprintf(stderr, "An error screenshot has been saved to '%s'.\n", shot)
	}
}

// notify reports the run outcome to the configured webhook, if any.
func notify(cfg config.WebhookConfig, req models.ScrapeRequest, res *models.RunResult, runErr error) {
	n := webhook.New(cfg.URL, cfg.Secret)
	if !n.Enabled() {
		return
	}

	var event *webhook.Event
	switch {
	case runErr != nil:
		event = webhook.NewEvent(webhook.RunFailed, "", map[string]any{
			"search_term": req.SearchTerm,
			"category":    req.Category,
			"error":       models.AsScrapeError(runErr).ToDetail(),
		})
	case res.Empty:
		event = webhook.NewEvent(webhook.RunEmpty, res.RunID, res)
	default:
		event = webhook.NewEvent(webhook.RunCompleted, res.RunID, res)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := n.Deliver(ctx, event); err != nil {
		slog.Warn("webhook delivery failed", "event", event.Type, "error", err)
	}
}
