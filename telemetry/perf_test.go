package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseInput)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePhysics)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[PhaseInput]; !ok {
		t.Error("expected input phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhasePhysics]; !ok {
		t.Error("expected physics phase to be tracked")
	}
	if stats.MinFrame > stats.AvgFrame || stats.AvgFrame > stats.MaxFrame {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinFrame, stats.AvgFrame, stats.MaxFrame)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseRender)
		time.Sleep(20 * time.Microsecond)
		pc.EndFrame()
	}

	if pc.sampleCount != 5 {
		t.Errorf("sampleCount = %d, want window size 5", pc.sampleCount)
	}
	stats := pc.Stats()
	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frame rate capacity")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseEffects)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	fast, slow := stats.PhasePct[PhaseEffects], stats.PhasePct[PhaseRender]
	if slow <= fast {
		t.Errorf("render (%.1f%%) should exceed effects (%.1f%%)", slow, fast)
	}
	if total := fast + slow; total > 100.5 {
		t.Errorf("phase percentages sum to %.1f%%", total)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgFrame != 0 || stats.FramesPerSecond != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("maps should be non-nil")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrame: 1500 * time.Microsecond,
		PhasePct: map[string]float64{PhasePhysics: 40, PhaseRender: 55},
	}
	row := s.ToCSV(300)
	if row.WindowEnd != 300 || row.AvgFrameUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.PhysicsPct != 40 || row.RenderPct != 55 || row.InputPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
