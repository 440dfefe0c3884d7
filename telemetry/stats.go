package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeMs        float64 `csv:"sim_time_ms"`

	// Frame time distribution
	FrameMsMean float64 `csv:"frame_ms_mean"`
	FrameMsStd  float64 `csv:"frame_ms_std"`
	FrameMsP95  float64 `csv:"frame_ms_p95"`
	FrameMsMax  float64 `csv:"frame_ms_max"`

	// Integrator work
	SubstepsMean float64 `csv:"substeps_mean"`
	SubstepsMax  int     `csv:"substeps_max"`

	// Events during window
	Contacts       int `csv:"contacts"`
	CornerContacts int `csv:"corner_contacts"`
	WallHits       int `csv:"wall_hits"`

	// Fraction of frames that ended with the left paddle active
	LeftActive float64 `csv:"left_active"`

	// Ball speed; drift is the largest relative deviation from the
	// session's initial speed
	SpeedMean  float64 `csv:"speed_mean"`
	SpeedDrift float64 `csv:"speed_drift"`

	// Live spark entities at window end
	Sparks int `csv:"sparks"`
}

// Summary holds mean, standard deviation, 95th percentile and maximum.
type Summary struct {
	Mean, Std, P95, Max float64
}

// Summarize computes a Summary of values. It returns the zero Summary for an
// empty slice and a zero Std for a single value.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	var s Summary
	if len(values) == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}
	s.Max = floats.Max(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time_ms", s.SimTimeMs),
		slog.Float64("frame_ms_mean", s.FrameMsMean),
		slog.Float64("frame_ms_std", s.FrameMsStd),
		slog.Float64("frame_ms_p95", s.FrameMsP95),
		slog.Float64("frame_ms_max", s.FrameMsMax),
		slog.Float64("substeps_mean", s.SubstepsMean),
		slog.Int("substeps_max", s.SubstepsMax),
		slog.Int("contacts", s.Contacts),
		slog.Int("corner_contacts", s.CornerContacts),
		slog.Int("wall_hits", s.WallHits),
		slog.Float64("left_active", s.LeftActive),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_drift", s.SpeedDrift),
		slog.Int("sparks", s.Sparks),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time_ms", s.SimTimeMs,
		"frame_ms_mean", s.FrameMsMean,
		"frame_ms_max", s.FrameMsMax,
		"substeps_max", s.SubstepsMax,
		"contacts", s.Contacts,
		"wall_hits", s.WallHits,
		"speed_drift", s.SpeedDrift,
		"sparks", s.Sparks,
	)
}
