// Command flowcanvas runs a node workflow either as a terminal canvas or as
// an HTTP server.
//
//	flowcanvas [flags] [tui|serve]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/core/workflow"
	"github.com/leofalp/flowcanvas/internal/config"
	"github.com/leofalp/flowcanvas/internal/server"
	"github.com/leofalp/flowcanvas/internal/tui"
	"github.com/leofalp/flowcanvas/nodes"
	"github.com/leofalp/flowcanvas/providers/ai/openai"
	"github.com/leofalp/flowcanvas/providers/observability"
	"github.com/leofalp/flowcanvas/providers/observability/slogobs"
	scrapeapi "github.com/leofalp/flowcanvas/providers/scrape"
	"github.com/leofalp/flowcanvas/providers/scrape/firecrawl"
	"github.com/leofalp/flowcanvas/providers/scrape/webfetch"
	"github.com/leofalp/flowcanvas/providers/sheets"
)

const (
	modeTUI   = "tui"
	modeServe = "serve"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	fs := flag.NewFlagSet("flowcanvas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: flowcanvas [flags] [tui|serve]")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.Workflow, "workflow", cfg.Workflow, "workflow file (.json, .yaml or .hcl); empty for the default canvas")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address in serve mode")
	fs.StringVar(&cfg.Scraper, "scraper", cfg.Scraper, "scrape backend: firecrawl or webfetch")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log destination in tui mode; logs are discarded when empty")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	mode := modeTUI
	switch fs.NArg() {
	case 0:
	case 1:
		mode = fs.Arg(0)
	default:
		fs.Usage()
		return exitUsage
	}
	if mode != modeTUI && mode != modeServe {
		fmt.Fprintf(stderr, "unknown mode %q\n", mode)
		fs.Usage()
		return exitUsage
	}

	logOutput, closeLog, err := logDestination(mode, cfg.LogFile, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeLog()
	observer := slogobs.New(slogobs.WithOutput(logOutput))

	store, err := loadStore(cfg.Workflow)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	set, err := nodes.NewSet(store, buildProviders(cfg, observer))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	switch mode {
	case modeServe:
		fmt.Fprintf(stdout, "flowcanvas %s listening on %s\n", server.Version, cfg.Addr)
		srv := server.New(set, endpointWriter(cfg), server.WithObserver(observer))
		if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
			observer.Error(ctx, "server stopped", observability.Error(err))
			return exitError
		}
	default:
		if err := tui.Run(ctx, set); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}
	return exitOK
}

// logDestination keeps log lines off the screen while the terminal UI runs.
func logDestination(mode, path string, stderr io.Writer) (io.Writer, func(), error) {
	if mode == modeServe {
		return stderr, func() {}, nil
	}
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func loadStore(path string) (*flow.Store, error) {
	def := workflow.Default()
	if path != "" {
		var err error
		if def, err = workflow.Load(path); err != nil {
			return nil, err
		}
	}
	return def.Build()
}

func buildProviders(cfg config.Config, observer observability.Provider) nodes.Providers {
	var scraper scrapeapi.Scraper
	if cfg.Scraper == config.ScraperWebFetch {
		scraper = webfetch.New()
	} else {
		scraper = firecrawl.New().WithAPIKey(cfg.FirecrawlAPIKey).WithBaseURL(cfg.FirecrawlBaseURL)
	}

	var writer sheets.Writer
	switch {
	case cfg.SheetsServerURL != "":
		writer = sheets.NewClient(cfg.SheetsServerURL)
	case cfg.SheetsConfigured():
		writer = sheets.NewGoogle(cfg.SheetsClientEmail, cfg.SheetsPrivateKey).WithEndpoint(cfg.SheetsEndpoint)
	}

	return nodes.Providers{
		Scraper:      scraper,
		Chat:         openai.New().WithAPIKey(cfg.OpenAIAPIKey).WithBaseURL(cfg.OpenAIBaseURL),
		Sheets:       writer,
		DefaultModel: cfg.DefaultModel,
		Observer:     observer,
	}
}

// endpointWriter backs POST /api/google-sheets. It is nil without a local
// credential so the endpoint reports the server as unconfigured.
func endpointWriter(cfg config.Config) sheets.Writer {
	if !cfg.SheetsConfigured() {
		return nil
	}
	return sheets.NewGoogle(cfg.SheetsClientEmail, cfg.SheetsPrivateKey).WithEndpoint(cfg.SheetsEndpoint)
}
