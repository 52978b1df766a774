package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/15195999826/LomoMarketplace-sub003/internal/config"
	"github.com/15195999826/LomoMarketplace-sub003/internal/data"
	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
	"github.com/15195999826/LomoMarketplace-sub003/internal/replay"
	"github.com/15195999826/LomoMarketplace-sub003/internal/world"
)

const DefaultConfigPath = "config/sim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("LOMO_SIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	runID := uuid.NewString()
	slog.Info("ability sim starting",
		"run", runID,
		"tick_ms", cfg.TickMs,
		"total_ticks", cfg.TotalTicks)

	w := world.New(world.Options{MaxEventDepth: cfg.MaxEventDepth})

	timelines, err := data.LoadTimelines(cfg.TimelineDefs)
	if err != nil {
		return fmt.Errorf("loading timelines: %w", err)
	}
	for _, tl := range timelines {
		if err := w.RegisterTimeline(tl); err != nil {
			return fmt.Errorf("registering timeline %s: %w", tl.ID, err)
		}
	}

	abilities, err := data.LoadAbilityConfigs(cfg.AbilityDefs)
	if err != nil {
		return fmt.Errorf("loading abilities: %w", err)
	}
	for _, ac := range abilities {
		if err := w.RegisterAbilityConfig(ac); err != nil {
			return fmt.Errorf("registering ability %s: %w", ac.ConfigID, err)
		}
	}

	scenario, err := LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	if err := scenario.Populate(w); err != nil {
		return fmt.Errorf("populating world: %w", err)
	}

	var out io.Writer = os.Stdout
	if cfg.ReplayPath != "" {
		f, err := os.Create(cfg.ReplayPath)
		if err != nil {
			return fmt.Errorf("creating replay log: %w", err)
		}
		defer f.Close()
		out = f
	}
	recorder := replay.NewRecorder(out)
	if err := recorder.WriteHeader(replay.Header{RunID: runID, TickMs: cfg.TickMs}); err != nil {
		return err
	}

	// The world itself is single-threaded: only the sim goroutine
	// touches it. The recorder consumes flushed batches over a channel
	// so slow output never stalls the tick cadence semantics.
	batches := make(chan []event.Event, 16)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		return runTicks(ctx, w, scenario, cfg, batches)
	})

	g.Go(func() error {
		for batch := range batches {
			if err := recorder.Record(batch); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("ability sim finished", "run", runID, "events", recorder.Written())
	return nil
}

func runTicks(ctx context.Context, w *world.World, scenario *Scenario, cfg config.Sim, batches chan<- []event.Event) error {
	for tick := 0; tick < cfg.TotalTicks; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		scenario.InjectDue(w, w.LogicTime()+cfg.TickMs)
		batch := w.Tick(cfg.TickMs)
		if len(batch) == 0 {
			continue
		}
		select {
		case batches <- batch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
