// Package main runs a spinpick game from a YAML file.
//
// The file holds the engine configuration and, under the "roster" key, the
// entries to split. The demo spins until every entry is placed and prints the
// groups. Environment variables (optionally from a .env file):
//
//	SPINPICK_CONFIG   path to the YAML file (default spinpick.yaml)
//	SPINPICK_ADDR     listen address for /state, /spin and /metrics (empty disables)
//	NATS_URL          publish assignment events to NATS when set
//	NATS_SUBJECT      subject for assignment events (default spinpick.assignments)
//	NATS_JETSTREAM    "true" to publish through JetStream
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/arloliu/spinpick"
	"github.com/arloliu/spinpick/internal/httpapi"
	"github.com/arloliu/spinpick/sink"
	"github.com/arloliu/spinpick/source"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("spinpick failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	path := envOr("SPINPICK_CONFIG", "spinpick.yaml")
	logger := spinpick.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := spinpick.LoadConfig(path)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	engine, err := spinpick.NewEngine(&cfg,
		spinpick.WithLogger(logger),
		spinpick.WithMetrics(spinpick.NewPrometheusMetrics(reg, cfg.Metrics.Namespace)),
	)
	if err != nil {
		return err
	}
	defer engine.Close()

	added, err := engine.LoadRoster(ctx, source.NewFile(path))
	if err != nil {
		logger.Warn("some roster entries were skipped", "error", err)
	}
	if added == 0 {
		return fmt.Errorf("no entries in %s", path)
	}

	if url := os.Getenv("NATS_URL"); url != "" {
		stopSink, err := startSink(ctx, engine, url, logger)
		if err != nil {
			return err
		}
		// runs after runner.Stop, once no more events can be produced
		defer stopSink()
	}

	if addr := os.Getenv("SPINPICK_ADDR"); addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewServer(engine, reg, logger).Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving engine state", "addr", addr)
	}

	runner := spinpick.NewRunner(engine)
	if err := runner.Start(ctx); err != nil {
		return err
	}
	defer runner.Stop()

	if err := play(ctx, engine); err != nil {
		return err
	}

	for i, g := range engine.Groups() {
		fmt.Printf("Group %d (total %d):", i+1, g.TotalScore)
		for _, m := range g.Members {
			fmt.Printf(" %s(%d)", m.Name, m.Score)
		}
		fmt.Println()
	}

	return nil
}

// play requests a spin every time the engine comes to rest until the roster is empty.
func play(ctx context.Context, engine *spinpick.Engine) error {
	phases, unsubscribe := engine.SubscribePhases()
	defer unsubscribe()

	// phase notifications can be dropped under load, so poll as well
	poll := time.NewTicker(250 * time.Millisecond)
	defer poll.Stop()

	for {
		var phase spinpick.Phase
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p, ok := <-phases:
			if !ok {
				return spinpick.ErrClosed
			}
			phase = p
		case <-poll.C:
			phase = engine.Phase()
		}

		switch phase {
		case spinpick.PhaseEmpty:
			return nil
		case spinpick.PhaseIdle:
			if err := engine.RequestSpin(); err != nil && !errors.Is(err, spinpick.ErrSpinInProgress) {
				return err
			}
		default:
		}
	}
}

// startSink forwards engine events to NATS. The returned stop function
// unsubscribes, waits for the forwarder to publish what it already received and
// then drains the connection.
func startSink(ctx context.Context, engine *spinpick.Engine, url string, logger spinpick.Logger) (func(), error) {
	nc, err := nats.Connect(url, nats.Name("spinpick"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	opts := []sink.Option{sink.WithLogger(logger)}
	if useJS, _ := strconv.ParseBool(os.Getenv("NATS_JETSTREAM")); useJS {
		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
		opts = append(opts, sink.WithJetStream(js))
	}

	events, unsubscribe := engine.Subscribe()
	s := sink.NewNATS(nc, envOr("NATS_SUBJECT", "spinpick.assignments"), opts...)
	wait := s.Start(ctx, events)
	logger.Info("publishing assignment events", "url", url)

	return func() {
		unsubscribe()
		if err := wait(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("event sink stopped", "error", err)
		}
		if err := nc.Drain(); err != nil {
			logger.Warn("failed to drain NATS connection", "error", err)
		}
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
