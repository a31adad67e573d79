package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinesearch/internal/browse"
	"github.com/mmcdole/cinesearch/internal/catalog"
	"github.com/mmcdole/cinesearch/internal/config"
	"github.com/mmcdole/cinesearch/internal/log"
	"github.com/mmcdole/cinesearch/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	query      string
	page       int
	importFile string
	initConfig bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.query, "q", "", "search once and print results instead of starting the TUI")
	flag.IntVar(&opts.page, "page", 1, "result page to print with -q")
	flag.StringVar(&opts.importFile, "import", "", "import a JSON array of movies into the local index")
	flag.BoolVar(&opts.initConfig, "init-config", false, "write a default config file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinesearch %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.initConfig {
		path, err := config.SaveConfig(config.DefaultConfig())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", path)
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config (run cinesearch -init-config to create one): %w", err)
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinesearch", "version", Version, "source", cfg.Catalog.Source)

	ctx := context.Background()

	if opts.importFile != "" {
		return runImport(ctx, cfg, logger, opts.importFile)
	}

	source, err := catalog.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer source.Close()

	ctrl := browse.New(source, browse.Options{
		Debounce:     cfg.Search.Debounce,
		FetchTimeout: cfg.Catalog.FetchTimeout,
		Logger:       logger,
	})

	// Plain mode when asked for, or when stdout is not a terminal
	if opts.query != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		query := opts.query
		if query == "" {
			query = cfg.Search.SeedQuery
		}
		return runPlain(ctrl, query, opts.page, os.Stdout)
	}

	model := tui.NewModel(ctrl, tui.Options{
		SeedQuery:    cfg.Search.SeedQuery,
		ShowOverview: cfg.UI.ShowOverview,
		ShowPosters:  cfg.UI.ShowPosters,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func runPlain(ctrl *browse.Controller, query string, page int, w io.Writer) error {
	err := tui.RunPlain(ctrl, query, page, w)
	var searchErr *tui.SearchError
	if errors.As(err, &searchErr) {
		// The error display mode, printed like the banner would show it
		return errors.New(searchErr.Message)
	}
	return err
}

func runImport(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	idx, err := catalog.OpenIndex(cfg, logger)
	if err != nil {
		return err
	}
	defer idx.Close()

	n, err := idx.Import(ctx, f)
	if err != nil {
		return fmt.Errorf("import failed after %d movies: %w", n, err)
	}

	fmt.Printf("✓ Imported %d movies into %s\n", n, cfg.Index.Path)
	return nil
}
