package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dtmas/internal/config"
	"dtmas/internal/diagrams"
	"dtmas/internal/export"
	"dtmas/internal/logs"
	"dtmas/internal/telemetry"
	"dtmas/internal/ui"
	"dtmas/internal/view"
)

// options holds the parsed CLI flags.
type options struct {
	configPath string
	view       string
	exportDir  string
	list       bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "config file (default $DTMAS_CONFIG or ~/.config/dtmas/config.toml)")
	flag.StringVar(&opts.view, "view", "", "view to open first")
	flag.StringVar(&opts.exportDir, "export", "", "write every view as SVG into this directory and exit")
	flag.BoolVar(&opts.list, "list", false, "print view ids and labels and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dtmas [flags]\n\n")
		fmt.Fprintf(os.Stderr, "dtmas shows the digital-twin multi-agent system diagrams in the terminal.\n")
		fmt.Fprintf(os.Stderr, "Switch views with tab or 1-5, SPC opens the command menu.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func run(opts options) error {
	reg := diagrams.Registry()

	if opts.list {
		for _, d := range reg.List() {
			fmt.Printf("%s\t%s\n", d.ID, d.Label)
		}
		return nil
	}

	if opts.exportDir != "" {
		store, err := export.NewStore(opts.exportDir)
		if err != nil {
			return err
		}
		paths, err := store.ExportAll(reg)
		for _, p := range paths {
			fmt.Println(p)
		}
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tracer, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tracer.Shutdown(sctx)
	}()

	// The terminal belongs to the TUI; logs go to a file.
	logFile, err := logs.OpenFile(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer logFile.Close()
	logger, err := logs.New(logs.Options{Writer: logFile, Level: cfg.Log.Level, Session: tracer.Session()})
	if err != nil {
		return err
	}

	store, err := export.NewStore(cfg.Export.Dir)
	if err != nil {
		return err
	}

	model, err := ui.NewAppModel(ui.Options{
		Registry: reg,
		Exporter: store,
		Tracer:   tracer,
		Logger:   logger,
		Title:    diagrams.Title,
		Footer:   diagrams.FooterNote,
		Captions: cfg.UI.Captions,
		Initial:  view.ID(opts.view),
	})
	if err != nil {
		return err
	}

	logger.Info("starting", "views", reg.Len(), "export_dir", store.BaseDir())
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("exiting")
	return nil
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "dtmas: %v\n", err)
		os.Exit(1)
	}
}
