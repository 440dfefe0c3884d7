package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame of the control loop.
const (
	PhaseInput     = "input"
	PhasePhysics   = "physics"
	PhaseEffects   = "effects"
	PhaseTelemetry = "telemetry"
	PhaseRender    = "render"
)

var phases = []string{PhaseInput, PhasePhysics, PhaseEffects, PhaseTelemetry, PhaseRender}

// Phases returns the frame phases in loop order.
func Phases() []string {
	return append([]string(nil), phases...)
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks wall-clock cost per frame over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration, len(phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	// Average duration and share of frame time per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Frames per second the loop could sustain at the average cost
	FramesPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < stats.MinFrame {
			stats.MinFrame = s.FrameDuration
		}
		if s.FrameDuration > stats.MaxFrame {
			stats.MaxFrame = s.FrameDuration
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	stats.AvgFrame = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgFrame > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgFrame) * 100
		}
	}
	if stats.AvgFrame > 0 {
		stats.FramesPerSecond = float64(time.Second) / float64(stats.AvgFrame)
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("fps_capacity", s.FramesPerSecond),
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	FPSCapacity  float64 `csv:"fps_capacity"`
	InputPct     float64 `csv:"input_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	EffectsPct   float64 `csv:"effects_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
	RenderPct    float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgFrameUS:   s.AvgFrame.Microseconds(),
		MinFrameUS:   s.MinFrame.Microseconds(),
		MaxFrameUS:   s.MaxFrame.Microseconds(),
		FPSCapacity:  s.FramesPerSecond,
		InputPct:     s.PhasePct[PhaseInput],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		EffectsPct:   s.PhasePct[PhaseEffects],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
		RenderPct:    s.PhasePct[PhaseRender],
	}
}
