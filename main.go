package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"snake-duel/config"
	"snake-duel/game"
	"snake-duel/journal"
	"snake-duel/logger"
	"snake-duel/ui"
)

const appName = "snake-duel"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(&logger.Config{
		Mode:  logger.ParseMode(cfg.Log.Mode),
		Level: cfg.Log.Level,
		App:   appName,
		Dir:   cfg.Log.Dir,
		File:  cfg.Log.File,
		Quiet: cfg.Frontend == config.FrontendTerm,
	})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := game.Options{Logger: log, Rounds: cfg.Rounds}
	if cfg.Journal != "" {
		jw, err := journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer jw.Close()
		opts.Journal = jw
	}

	log.Info("starting",
		zap.String("frontend", cfg.Frontend),
		zap.Duration("tick", cfg.Tick),
		zap.Int("rounds", cfg.Rounds),
	)

	var g *game.Game
	switch cfg.Frontend {
	case config.FrontendRaylib:
		g, err = runWindow(ctx, cancel, cfg, opts)
	case config.FrontendTerm:
		g, err = runTerminal(ctx, cancel, cfg, opts)
	default:
		g, err = runHeadless(ctx, cfg, opts)
	}
	if g != nil {
		log.Info("finished",
			zap.String("score", g.Scores().Summary()),
			zap.Int("longest", g.Scores().Longest()),
		)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig reads the config file and applies the flags that were set
// explicitly on top of it.
func loadConfig() (config.Config, error) {
	def := config.Default()
	var (
		path     = flag.String("config", "", "YAML config file")
		frontend = flag.String("frontend", def.Frontend, "raylib, term or headless")
		tick     = flag.Duration("tick", def.Tick, "clock tick period")
		rounds   = flag.Int("rounds", def.Rounds, "stop after this many rounds, 0 plays forever")
		jpath    = flag.String("journal", def.Journal, "append finished rounds to this JSON-lines file")
		level    = flag.String("log-level", def.Log.Level, "debug, info, warn or error")
		cell     = flag.Int("cell", def.CellSize, "cell size in pixels for the raylib frontend")
	)
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			cfg.Frontend = *frontend
		case "tick":
			cfg.Tick = *tick
		case "rounds":
			cfg.Rounds = *rounds
		case "journal":
			cfg.Journal = *jpath
		case "log-level":
			cfg.Log.Level = *level
		case "cell":
			cfg.CellSize = *cell
		}
	})
	return cfg, cfg.Validate()
}

// runWindow keeps the game on the main goroutine: raylib must be driven
// from the thread that created the window.
func runWindow(ctx context.Context, cancel context.CancelFunc, cfg config.Config, opts game.Options) (*game.Game, error) {
	w := ui.NewWindow(cfg.CellSize, cfg.Tick, cancel)
	w.Open("Snake Duel")
	defer w.Close()

	opts.Sink, opts.Input, opts.Palette, opts.Ticker = w, w, w, w
	g := game.NewGame(opts)
	w.SetStatus(g.Scores().Summary)
	return g, g.Run(ctx)
}

func runTerminal(ctx context.Context, cancel context.CancelFunc, cfg config.Config, opts game.Options) (*game.Game, error) {
	t := ui.NewTerminal(cfg.Tick, cancel)
	if err := t.Open(); err != nil {
		return nil, err
	}
	defer t.Close()

	opts.Sink, opts.Input, opts.Palette, opts.Ticker = t, t, t, t
	g := game.NewGame(opts)
	t.SetStatus(g.Scores().Summary)

	var eg errgroup.Group
	eg.Go(t.Poll)
	eg.Go(func() error {
		defer t.Interrupt()
		return g.Run(ctx)
	})
	return g, eg.Wait()
}

func runHeadless(ctx context.Context, cfg config.Config, opts game.Options) (*game.Game, error) {
	period := cfg.Tick
	if cfg.Rounds > 0 {
		// Bounded soak runs do not need real time.
		period = 0
	}
	h := ui.NewHeadless(period)
	defer h.Stop()

	opts.Sink, opts.Input, opts.Palette, opts.Ticker = h, h, h, h
	g := game.NewGame(opts)

	start := time.Now()
	err := g.Run(ctx)
	opts.Logger.Debug("headless run", zap.Duration("elapsed", time.Since(start)))
	return g, err
}
