package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/pong/physics"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single", []float64{16}, Summary{Mean: 16, Std: 0, P95: 16, Max: 16}},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, Summary{Mean: 5, Std: math.Sqrt(32.0 / 7), P95: 9, Max: 9}},
		{"unsorted", []float64{30, 10, 20}, Summary{Mean: 20, Std: 10, P95: 30, Max: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			if !near(got.Mean, tt.want.Mean) || !near(got.Std, tt.want.Std) ||
				!near(got.P95, tt.want.P95) || !near(got.Max, tt.want.Max) {
				t.Errorf("Summarize(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSummarizeLeavesInputUnsorted(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered to %v", values)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(3, 0.5)

	corner := physics.Contact{Feature: physics.FeatureCorner, Normal: r2.Vec{Y: -1}}
	face := physics.Contact{Feature: physics.FeatureLeft, Normal: r2.Vec{X: -1}}
	samples := []FrameSample{
		{FrameMs: 10, Report: physics.Report{Substeps: 2, Walls: 1}, Speed: 0.5, Active: physics.Left},
		{FrameMs: 20, Report: physics.Report{Substeps: 4, Contacts: []physics.Contact{corner}}, Speed: 0.5, Active: physics.Right},
		{FrameMs: 30, Report: physics.Report{Substeps: 6, Walls: 2, Contacts: []physics.Contact{face}}, Speed: 0.51, Active: physics.Left},
	}

	for i, s := range samples {
		if c.ShouldFlush() {
			t.Fatalf("flush requested after %d frames", i)
		}
		c.Record(s)
	}
	if !c.ShouldFlush() {
		t.Fatal("expected flush after 3 frames")
	}

	stats := c.Flush(7)

	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 3 {
		t.Errorf("window = [%d, %d], want [0, 3]", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if !near(stats.SimTimeMs, 60) {
		t.Errorf("sim time = %g, want 60", stats.SimTimeMs)
	}
	if !near(stats.FrameMsMean, 20) || !near(stats.FrameMsStd, 10) || stats.FrameMsMax != 30 {
		t.Errorf("frame ms = %g ± %g max %g", stats.FrameMsMean, stats.FrameMsStd, stats.FrameMsMax)
	}
	if !near(stats.SubstepsMean, 4) || stats.SubstepsMax != 6 {
		t.Errorf("substeps = %g max %d", stats.SubstepsMean, stats.SubstepsMax)
	}
	if stats.Contacts != 2 || stats.CornerContacts != 1 || stats.WallHits != 3 {
		t.Errorf("events = %d contacts, %d corners, %d walls", stats.Contacts, stats.CornerContacts, stats.WallHits)
	}
	if !near(stats.LeftActive, 2.0/3) {
		t.Errorf("left active = %g, want 2/3", stats.LeftActive)
	}
	if math.Abs(stats.SpeedDrift-0.02) > 1e-9 {
		t.Errorf("speed drift = %g, want 0.02", stats.SpeedDrift)
	}
	if stats.Sparks != 7 {
		t.Errorf("sparks = %d, want 7", stats.Sparks)
	}

	// Counters reset for the next window
	if c.ShouldFlush() {
		t.Error("flush requested right after flushing")
	}
	c.Record(FrameSample{FrameMs: 5, Report: physics.Report{Substeps: 1}, Speed: 0.5})
	next := c.Flush(0)
	if next.WindowStartFrame != 3 || next.WindowEndFrame != 4 {
		t.Errorf("next window = [%d, %d], want [3, 4]", next.WindowStartFrame, next.WindowEndFrame)
	}
	if next.Contacts != 0 || next.WallHits != 0 || next.SpeedDrift != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if !near(c.SimTimeMs(), 65) || c.Frame() != 4 {
		t.Errorf("totals = %g ms over %d frames", c.SimTimeMs(), c.Frame())
	}
}

func TestNewContactRecord(t *testing.T) {
	c := physics.Contact{
		Side:    physics.Right,
		Substep: 3,
		Feature: physics.FeatureCorner,
		Corner:  1,
		Point:   r2.Vec{X: 717.5, Y: 375},
		Normal:  r2.Vec{Y: 1},
	}
	rec := NewContactRecord(42, 700, c)
	want := ContactRecord{
		Frame: 42, SimTimeMs: 700, Substep: 3, Side: "right", Feature: "corner",
		Corner: 1, PointX: 717.5, PointY: 375, NormalX: 0, NormalY: 1,
	}
	if rec != want {
		t.Errorf("record = %+v, want %+v", rec, want)
	}
}
