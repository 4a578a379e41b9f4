package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dtmas/internal/config"
	"dtmas/internal/diagrams"
	"dtmas/internal/logs"
	"dtmas/internal/telemetry"
	"dtmas/internal/web"
)

// options holds the parsed CLI flags.
type options struct {
	configPath string
	addr       string
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "config file (default $DTMAS_CONFIG or ~/.config/dtmas/config.toml)")
	flag.StringVar(&opts.addr, "addr", "", "listen address (overrides web.addr)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dtmas-web [flags]\n\n")
		fmt.Fprintf(os.Stderr, "dtmas-web serves the digital-twin multi-agent system diagrams over HTTP.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Web.Addr = opts.addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	logger, err := logs.New(logs.Options{Writer: os.Stderr, Level: cfg.Log.Level, Session: tracer.Session()})
	if err != nil {
		return err
	}

	srv, err := web.NewServer(web.Config{
		Addr:     cfg.Web.Addr,
		Registry: diagrams.Registry(),
		Logger:   logger,
		Tracer:   tracer,
		Title:    diagrams.Title,
		Footer:   diagrams.FooterNote,
	})
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	logger.Info("listening", "addr", srv.Addr())

	<-ctx.Done()
	logger.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(sctx); err != nil {
		return fmt.Errorf("stop server: %w", err)
	}
	return tracer.Shutdown(sctx)
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "dtmas-web: %v\n", err)
		os.Exit(1)
	}
}
