// Sweep runs headless sessions over a grid of substep caps, paddle shapes,
// edge modes and ball speeds, and writes one CSV row per grid point.
//
// Usage: go run ./cmd/sweep -output sweep.csv -caps 1,2,5,10,20
package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pong/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	output := flag.String("output", "sweep.csv", "Output CSV path")
	capsFlag := flag.String("caps", "1,2,5,10,20", "Comma-separated max substep values (ms)")
	shapesFlag := flag.String("shapes", "capsule,rounded,rect", "Comma-separated paddle shapes")
	modesFlag := flag.String("modes", "gated,legacy", "Comma-separated edge modes")
	speedsFlag := flag.String("speeds", "1,2,4", "Comma-separated ball speed multipliers")
	runs := flag.Int("runs", 5, "Launch angles per case")
	spreadDeg := flag.Float64("spread", 30, "Launch angle spread either side of the configured velocity (degrees)")
	frames := flag.Int("frames", 20000, "Frames per run")
	frameMs := flag.Float64("frame-ms", 16, "Fixed frame time (ms)")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel workers")
	flag.Parse()

	caps, err := parseFloats(*capsFlag)
	if err != nil {
		fatal("invalid -caps", err)
	}
	shapes, err := parseShapes(*shapesFlag)
	if err != nil {
		fatal("invalid -shapes", err)
	}
	modes, err := parseModes(*modesFlag)
	if err != nil {
		fatal("invalid -modes", err)
	}
	speeds, err := parseFloats(*speedsFlag)
	if err != nil {
		fatal("invalid -speeds", err)
	}

	// Fail on a bad base config before starting workers
	if _, err := config.Load(*configPath); err != nil {
		fatal("failed to load config", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cases := Cases(caps, shapes, modes, speeds)
	angles := LaunchAngles(*runs, *spreadDeg*math.Pi/180)
	eval := NewEvaluator(*configPath, *frameMs, *frames, angles)

	slog.Info("starting sweep",
		"cases", len(cases),
		"runs_per_case", len(angles),
		"frames", *frames,
		"frame_ms", *frameMs,
		"workers", *workers,
	)
	start := time.Now()

	results := eval.EvaluateAll(ctx, cases, *workers, func(done int, r Result) {
		slog.Info("case done",
			"done", done,
			"total", len(cases),
			"shape", r.Shape,
			"edge_mode", r.EdgeMode,
			"max_substep_ms", r.MaxSubstepMs,
			"speed_scale", r.SpeedScale,
			"contacts", r.Contacts,
			"speed_drift_max", r.SpeedDriftMax,
			"error", r.Error,
		)
	})

	f, err := os.Create(*output)
	if err != nil {
		fatal("failed to create output", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&results, f); err != nil {
		fatal("failed to write results", err)
	}

	slog.Info("sweep complete", "output", *output, "elapsed", time.Since(start).Round(time.Millisecond))
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
