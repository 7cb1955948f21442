// marketdeck is a terminal dashboard for equity market monitoring.
//
// It renders user-composed dashboards of quote, chart, fundamentals, and
// news widgets on a 12-column grid. Dashboards, tabs, widget layouts, and
// per-widget view state persist across sessions; widgets sharing a symbol
// group follow each other's symbol selection.
//
// Usage:
//
//	marketdeck [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: XDG search path)
//	-template string  Apply a layout template on startup (overrides config)
//	-list-templates   List built-in layout templates and exit
//	-summary          Print the persisted dashboards and exit
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/app"
	"gitlab.com/tinyland/lab/marketdeck/pkg/config"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/feed"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/template"
	"gitlab.com/tinyland/lab/marketdeck/pkg/terminal"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
	"gitlab.com/tinyland/lab/marketdeck/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to configuration file")
		templateName  = flag.String("template", "", "Apply a layout template on startup")
		listTemplates = flag.Bool("list-templates", false, "List built-in layout templates and exit")
		summary       = flag.Bool("summary", false, "Print the persisted dashboards and exit")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("marketdeck %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *listTemplates {
		for _, name := range template.Names() {
			tpl := template.Get(name)
			fmt.Printf("%-22s %s (%d widgets)\n", name, tpl.Description, len(tpl.Widgets))
		}
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// One persistence store per concern so dashboard state and widget UI
	// state stay in separate files.
	deckDisk := persist.New(filepath.Join(cfg.General.DataDir, "dashboards"), logger)
	uiDisk := persist.New(filepath.Join(cfg.General.DataDir, "uistate"), logger)

	store := deck.New(deckDisk, logger,
		deck.WithSaveDebounce(cfg.Dashboard.SaveDebounce.Duration))
	defer store.Close()

	if *summary {
		printSummary(store)
		os.Exit(0)
	}

	if !terminal.IsTTY() {
		fmt.Fprintln(os.Stderr, "marketdeck needs a terminal (use -summary for scripted output)")
		os.Exit(1)
	}

	theme.SetCurrent(cfg.Theme.Name)
	theme.Current = theme.Adapt(theme.Current, terminal.ColorDepth())

	bus := group.NewBus()
	quotes := feed.New(feed.Config{
		Symbols: cfg.Feed.Symbols,
		Seed:    cfg.Feed.Seed,
	})

	// A fresh store starts from the configured template; -template forces a
	// re-apply even over existing state.
	startTemplate := ""
	if len(store.Dashboards()) == 1 && isBlank(store) {
		startTemplate = cfg.Dashboard.DefaultTemplate
	}
	if *templateName != "" {
		startTemplate = *templateName
	}
	if startTemplate != "" {
		if !template.Has(startTemplate) {
			logger.Warn("unknown template, using fallback", "template", startTemplate)
		}
		template.Apply(store, template.Get(startTemplate), logger)
	}

	factory := widgets.NewFactory(widgets.Deps{
		Feed: quotes,
		Bus:  bus,
		UI:   uiDisk,
	})

	appCfg := app.DefaultConfig()
	appCfg.UI = uiDisk
	if cfg.Feed.Interval.Duration > 0 {
		appCfg.RefreshInterval = cfg.Feed.Interval.Duration
	}
	model := app.NewAppModel(appCfg, store, bus, quotes, factory)

	// Flush pending saves on SIGINT/SIGTERM even if bubbletea does not get
	// to exit cleanly.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		store.Close()
		os.Exit(0)
	}()

	logger.Info("starting marketdeck",
		"theme", cfg.Theme.Name,
		"data_dir", cfg.General.DataDir,
		"size", terminal.GetSize(),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the named file or walks the default search path.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// newLogger builds the slog logger writing to stderr and the configured
// log file.
func newLogger(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.General.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stderr, f)
		closeFn = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

// isBlank reports whether the store holds nothing but an empty default
// dashboard.
func isBlank(s *deck.Store) bool {
	for _, d := range s.Dashboards() {
		for _, t := range d.Tabs {
			if len(t.Widgets) > 0 {
				return false
			}
		}
	}
	return true
}

// printSummary writes the persisted dashboard structure to stdout.
func printSummary(s *deck.Store) {
	for _, d := range s.Dashboards() {
		fmt.Printf("%s (%s)\n", d.Name, d.ID)
		for _, t := range d.Tabs {
			fmt.Printf("  %s: %d widgets\n", t.Name, len(t.Widgets))
			for _, w := range t.Widgets {
				fmt.Printf("    %-22s %dx%d at (%d,%d) group %s\n",
					w.Type, w.Layout.W, w.Layout.H, w.Layout.X, w.Layout.Y, w.Group)
			}
		}
	}
}
