package main

import (
	"context"
	"sync"
	"time"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/sim"
	"github.com/pthm-cable/pong/telemetry"
)

// Result aggregates all runs of one case.
type Result struct {
	MaxSubstepMs   float64 `csv:"max_substep_ms"`
	Shape          string  `csv:"shape"`
	EdgeMode       string  `csv:"edge_mode"`
	SpeedScale     float64 `csv:"speed_scale"`
	Runs           int     `csv:"runs"`
	Frames         int64   `csv:"frames"`
	Contacts       int     `csv:"contacts"`
	CornerContacts int     `csv:"corner_contacts"`
	WallHits       int     `csv:"wall_hits"`
	SubstepsMean   float64 `csv:"substeps_mean"`
	SubstepsMax    int     `csv:"substeps_max"`
	SpeedDriftMax  float64 `csv:"speed_drift_max"`
	NsPerFrame     float64 `csv:"ns_per_frame"`
	Error          string  `csv:"error"`
}

// Evaluator runs headless sessions for sweep cases.
type Evaluator struct {
	configPath string
	frameMs    float64
	frames     int
	angles     []float64
}

// NewEvaluator creates an evaluator running frames fixed frames per launch
// angle.
func NewEvaluator(configPath string, frameMs float64, frames int, angles []float64) *Evaluator {
	return &Evaluator{
		configPath: configPath,
		frameMs:    frameMs,
		frames:     frames,
		angles:     angles,
	}
}

// Evaluate runs every launch angle of one case and aggregates the windows.
func (e *Evaluator) Evaluate(ctx context.Context, c Case) Result {
	res := Result{
		MaxSubstepMs: c.MaxSubstepMs,
		Shape:        c.Shape.String(),
		EdgeMode:     c.EdgeMode.String(),
		SpeedScale:   c.SpeedScale,
	}

	var substepSum float64
	var elapsed time.Duration
	for _, angle := range e.angles {
		// Fresh config per run; Load returns an independent copy
		cfg, err := config.Load(e.configPath)
		if err == nil {
			err = c.Apply(cfg, angle)
		}
		if err != nil {
			res.Error = err.Error()
			return res
		}

		var windows []telemetry.WindowStats
		s, err := sim.New(cfg, sim.Options{
			Seed: 1,
			StatsCallback: func(ws telemetry.WindowStats) {
				windows = append(windows, ws)
			},
		})
		if err != nil {
			res.Error = err.Error()
			return res
		}

		start := time.Now()
		n := s.RunHeadless(ctx, e.frameMs, e.frames)
		elapsed += time.Since(start)

		res.Runs++
		res.Frames += int64(n)
		for _, w := range windows {
			frames := float64(w.WindowEndFrame - w.WindowStartFrame)
			res.Contacts += w.Contacts
			res.CornerContacts += w.CornerContacts
			res.WallHits += w.WallHits
			substepSum += w.SubstepsMean * frames
			res.SubstepsMax = max(res.SubstepsMax, w.SubstepsMax)
			res.SpeedDriftMax = max(res.SpeedDriftMax, w.SpeedDrift)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if res.Frames > 0 {
		res.SubstepsMean = substepSum / float64(res.Frames)
		res.NsPerFrame = float64(elapsed.Nanoseconds()) / float64(res.Frames)
	}
	return res
}

// EvaluateAll runs cases on a pool of workers and returns results in case
// order.
func (e *Evaluator) EvaluateAll(ctx context.Context, cases []Case, workers int, progress func(done int, r Result)) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(cases))
	jobs := make(chan int)

	var mu sync.Mutex
	done := 0

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r := e.Evaluate(ctx, cases[i])
				results[i] = r

				if progress != nil {
					mu.Lock()
					done++
					progress(done, r)
					mu.Unlock()
				}
			}
		}()
	}

	for i := range cases {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
