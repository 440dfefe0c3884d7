// Package sim runs a game session without any window: physics, contact
// effects and telemetry, driven one frame at a time.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/pong/config"
	"github.com/pthm-cable/pong/physics"
	"github.com/pthm-cable/pong/systems"
	"github.com/pthm-cable/pong/telemetry"
)

// bookmarkHistory is the number of windows bookmarks compare against.
const bookmarkHistory = 10

// Options configures a session beyond what the config file holds.
type Options struct {
	Seed     int64
	LogStats bool

	// Output receives telemetry CSVs; nil disables file output.
	Output *telemetry.OutputManager

	// StatsCallback, if set, is called with every flushed window.
	StatsCallback func(telemetry.WindowStats)

	// BookmarkCallback, if set, is called with every triggered bookmark.
	BookmarkCallback func(telemetry.Bookmark)
}

// Session owns the simulation state and everything that observes it.
type Session struct {
	cfg    *config.Config
	params physics.Params
	state  physics.State

	sparks  *systems.SparkSystem
	effects bool

	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	perf      *telemetry.PerfCollector
	opts      Options

	last     physics.Report
	contacts []telemetry.ContactRecord
}

// New creates a session from a loaded config.
func New(cfg *config.Config, opts Options) (*Session, error) {
	params, err := cfg.PhysicsParams()
	if err != nil {
		return nil, fmt.Errorf("building physics params: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		params: params,
		sparks: systems.NewSparkSystem(systems.SparkConfig{
			PerContact: cfg.Effects.SparksPerContact,
			LifetimeMs: cfg.Effects.LifetimeMs,
			Speed:      cfg.Effects.Speed,
			Spread:     cfg.Effects.Spread,
		}, opts.Seed),
		effects: cfg.Effects.Enabled,
		perf:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		opts:    opts,
	}
	s.Reset()
	return s, nil
}

// Reset puts the ball and paddles back at their starting positions and
// starts a fresh telemetry window.
func (s *Session) Reset() {
	ball := s.cfg.InitialBall()
	s.state = physics.NewState(s.params, s.cfg.Arena.HPadding, ball, s.cfg.Derived.InitialActive)
	s.collector = telemetry.NewCollector(s.cfg.Telemetry.WindowFrames, ball.Speed())
	s.bookmarks = telemetry.NewBookmarkDetector(bookmarkHistory)
	s.sparks.Clear()
	s.last = physics.Report{}
}

// Step advances the session by one frame of frameMs with push held.
// Invalid frame times advance nothing.
func (s *Session) Step(frameMs float64, push physics.Push) physics.Report {
	if !(frameMs >= 0) || math.IsInf(frameMs, 0) {
		frameMs = 0
	}

	s.perf.StartPhase(telemetry.PhasePhysics)
	rep := physics.Advance(&s.state, frameMs, push, s.params)

	s.perf.StartPhase(telemetry.PhaseEffects)
	if s.effects {
		for _, c := range rep.Contacts {
			s.sparks.Emit(c)
		}
	}
	s.sparks.Update(frameMs)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.record(frameMs, rep)

	s.last = rep
	return rep
}

func (s *Session) record(frameMs float64, rep physics.Report) {
	s.collector.Record(telemetry.FrameSample{
		FrameMs: frameMs,
		Report:  rep,
		Speed:   s.state.Ball.Speed(),
		Active:  s.state.Active,
	})

	if s.opts.Output != nil && len(rep.Contacts) > 0 {
		s.contacts = s.contacts[:0]
		for _, c := range rep.Contacts {
			s.contacts = append(s.contacts, telemetry.NewContactRecord(s.collector.Frame(), s.collector.SimTimeMs(), c))
		}
		if err := s.opts.Output.WriteContacts(s.contacts); err != nil {
			slog.Error("failed to write contacts", "error", err)
		}
	}

	if s.collector.ShouldFlush() {
		s.flush()
	}
}

// flush closes the current telemetry window and reports it.
func (s *Session) flush() {
	stats := s.collector.Flush(s.sparks.Count())
	perfStats := s.perf.Stats()

	if s.opts.StatsCallback != nil {
		s.opts.StatsCallback(stats)
	}
	if s.opts.LogStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}
	if err := s.opts.Output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.opts.Output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.opts.LogStats {
			bm.LogBookmark()
		}
		if s.opts.BookmarkCallback != nil {
			s.opts.BookmarkCallback(bm)
		}
		if err := s.opts.Output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// Finish flushes a partially filled telemetry window.
func (s *Session) Finish() {
	if s.collector.Pending() > 0 {
		s.flush()
	}
}

// SetParams swaps the physics parameters mid-session, e.g. from the tuning
// panel. Paddles are clamped into the new shape's range.
func (s *Session) SetParams(p physics.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	minY, maxY := p.PaddleRange()
	for i := range s.state.Paddles {
		s.state.Paddles[i].Y = physics.Clamp(s.state.Paddles[i].Y, minY, maxY)
	}
	return nil
}

// SetEffects enables or disables spark emission.
func (s *Session) SetEffects(on bool) {
	s.effects = on
}

// Effects reports whether spark emission is enabled.
func (s *Session) Effects() bool {
	return s.effects
}

// State returns a copy of the current simulation state.
func (s *Session) State() physics.State {
	return s.state
}

// Params returns the physics parameters in use.
func (s *Session) Params() physics.Params {
	return s.params
}

// LastReport returns the report of the most recent Step.
func (s *Session) LastReport() physics.Report {
	return s.last
}

// Sparks returns the spark system for rendering.
func (s *Session) Sparks() *systems.SparkSystem {
	return s.sparks
}

// Perf returns the frame timing collector. Callers wrap Step with
// StartFrame and EndFrame and time their own phases in between.
func (s *Session) Perf() *telemetry.PerfCollector {
	return s.perf
}

// Frame returns the number of frames stepped since the last Reset.
func (s *Session) Frame() int64 {
	return s.collector.Frame()
}

// RunHeadless steps the session with a fixed frame time and no input until
// frames have run or ctx is cancelled, then flushes the last partial window.
// frames <= 0 runs until cancellation. It returns the number of frames run.
func (s *Session) RunHeadless(ctx context.Context, frameMs float64, frames int) int {
	n := 0
	for frames <= 0 || n < frames {
		if ctx.Err() != nil {
			break
		}
		s.perf.StartFrame()
		s.perf.StartPhase(telemetry.PhaseInput)
		s.Step(frameMs, physics.None)
		s.perf.EndFrame()
		n++
	}
	s.Finish()
	return n
}
