package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/term"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/game"
	"github.com/pthm-cable/pong/sim"
	"github.com/pthm-cable/pong/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	frameMs := flag.Float64("frame-ms", 16, "Fixed frame time in headless mode (ms)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "RNG seed for effects (0 = time-based)")

	flag.Parse()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	info := telemetry.NewRunInfo(rngSeed, *headless)
	if *headless {
		info.FrameMs = *frameMs
	}

	setupLogging(*logLevel, info.RunID)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if err := output.WriteRunInfo(info); err != nil {
		slog.Error("failed to write run info", "error", err)
	}

	opts := sim.Options{
		Seed:     rngSeed,
		LogStats: *logStats,
		Output:   output,
	}

	if *headless {
		err = runHeadless(cfg, opts, *frameMs, *maxFrames)
	} else {
		err = runWindow(cfg, opts, *maxFrames)
	}

	if cerr := output.Close(); cerr != nil {
		slog.Error("failed to close output", "error", cerr)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation without a window until max frames or an
// interrupt.
func runHeadless(cfg *config.Config, opts sim.Options, frameMs float64, maxFrames int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := sim.New(cfg, opts)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"frame_ms", frameMs,
		"max_frames", maxFrames,
	)
	start := time.Now()
	n := s.RunHeadless(ctx, frameMs, maxFrames)
	slog.Info("headless simulation finished",
		"frames", n,
		"sim_time_ms", float64(n)*frameMs,
		"elapsed", time.Since(start),
	)
	return nil
}

// runWindow opens the window and runs the game loop until the window closes.
func runWindow(cfg *config.Config, opts sim.Options, maxFrames int) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(cfg.Derived.ScreenW, cfg.Derived.ScreenH, "Pong")
	if !rl.IsWindowReady() {
		return errors.New("failed to open window")
	}
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyEscape)

	g, err := game.New(cfg, opts)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxFrames > 0 && g.Frame() >= int64(maxFrames) {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}
	return nil
}

// setupLogging installs a text handler for terminals and JSON otherwise.
func setupLogging(level, runID string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stdout.Fd())) {
		handler = slog.NewTextHandler(os.Stdout, hopts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, hopts)
	}
	slog.SetDefault(slog.New(handler).With("run_id", runID))
}
