package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crimson-sun/actionlog/internal/config"
	"github.com/crimson-sun/actionlog/internal/connector"
	"github.com/crimson-sun/actionlog/internal/engine"
	"github.com/crimson-sun/actionlog/internal/engine/dedup"
	"github.com/crimson-sun/actionlog/internal/output"
	"github.com/crimson-sun/actionlog/internal/output/async"
	"github.com/crimson-sun/actionlog/internal/output/file"
	"github.com/crimson-sun/actionlog/internal/output/multi"
	"github.com/crimson-sun/actionlog/internal/output/slogout"
	"github.com/crimson-sun/actionlog/internal/output/sqlite"
	"github.com/crimson-sun/actionlog/internal/output/stdout"
	"github.com/crimson-sun/actionlog/internal/output/webhook"
	"github.com/crimson-sun/actionlog/internal/pipeline"
	"github.com/crimson-sun/actionlog/internal/session"
)

// buildOutput constructs every configured output. Network and database
// sinks are wrapped in async so a slow destination never stalls the tick.
func buildOutput(cfg config.Config) (output.Output, error) {
	var outs []output.Output
	closeAll := func() {
		for _, o := range outs {
			o.Close()
		}
	}

	for _, name := range cfg.Output.Outputs {
		var (
			o   output.Output
			err error
		)
		switch name {
		case "stdout":
			o = stdout.New(cfg.Output.JSON, cfg.Output.Pretty)
		case "slog":
			o = slogout.New(nil)
		case "file":
			var opts []file.Option
			if cfg.Output.FileMaxSize > 0 {
				opts = append(opts, file.WithMaxSize(cfg.Output.FileMaxSize))
			}
			if !cfg.Output.JSON {
				opts = append(opts, file.WithPlainLines())
			}
			o, err = file.New(cfg.Output.FilePath, opts...)
		case "sqlite":
			var db *sqlite.Output
			db, err = sqlite.Open(cfg.Output.DBPath)
			if err == nil {
				o = async.New(db, async.WithDrainTimeout(cfg.ShutdownTimeout))
			}
		case "webhook":
			o = async.New(webhook.New(cfg.Output.WebhookURL), async.WithDrainTimeout(cfg.ShutdownTimeout))
		default:
			err = fmt.Errorf("unknown output %q", name)
		}
		if err != nil {
			closeAll()
			return nil, err
		}
		outs = append(outs, o)
	}

	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}

func engineOptions(cfg config.EngineConfig) engine.Options {
	return engine.Options{
		Enabled:     cfg.Enabled,
		Projectiles: cfg.Projectiles,
		Dedup: dedup.Config{
			Window:   cfg.DebounceWindow,
			Capacity: cfg.DebounceCapacity,
		},
		ToggleSuppress:  cfg.ToggleSuppress,
		ForgetOnDespawn: cfg.ForgetOnDespawn,
	}
}

// run streams one session from the configured connector to the outputs.
func run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		return err
	}

	out, err := buildOutput(cfg)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(cfg.MetricsAddr, cfg.ShutdownTimeout)
		defer stopMetrics()
	}

	sess := session.NewReplay()
	eng := engine.New(sess, out, engineOptions(cfg.Engine))
	p := pipeline.New(ctor(), sess, eng, out)

	slog.Info("actionlog starting",
		"connector", cfg.Connector.Provider,
		"source", cfg.Connector.Source,
		"outputs", cfg.Output.Outputs,
	)

	streamErr := p.Stream(ctx, connector.ConnectorConfig{
		Provider: cfg.Connector.Provider,
		Source:   cfg.Connector.Source,
		Format:   cfg.Connector.Format,
		APIKey:   cfg.Connector.APIKey,
		Extra:    cfg.Connector.Headers,
	})
	if errors.Is(streamErr, context.Canceled) {
		streamErr = nil
	}
	return errors.Join(streamErr, p.Close())
}

// serveMetrics exposes the prometheus registry and returns a shutdown func.
func serveMetrics(addr string, timeout time.Duration) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	slog.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
