package telemetry

import (
	"math"

	"github.com/pthm-cable/pong/physics"
)

// FrameSample is what the loop reports after advancing one frame.
type FrameSample struct {
	FrameMs float64
	Report  physics.Report
	Speed   float64
	Active  physics.Side
}

// Collector accumulates frame samples and produces WindowStats every
// windowFrames frames.
type Collector struct {
	windowFrames int
	initialSpeed float64

	frame       int64
	simMs       float64
	windowStart int64

	// Current window
	frameMs        []float64
	substeps       []float64
	speeds         []float64
	substepsMax    int
	contacts       int
	cornerContacts int
	wallHits       int
	leftActive     int
	maxDrift       float64
}

// NewCollector creates a stats collector. initialSpeed is the ball speed at
// session start, the reference for speed drift.
func NewCollector(windowFrames int, initialSpeed float64) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: windowFrames,
		initialSpeed: initialSpeed,
		frameMs:      make([]float64, 0, windowFrames),
		substeps:     make([]float64, 0, windowFrames),
		speeds:       make([]float64, 0, windowFrames),
	}
}

// Record adds one frame to the current window.
func (c *Collector) Record(s FrameSample) {
	c.frame++
	c.simMs += s.FrameMs

	c.frameMs = append(c.frameMs, s.FrameMs)
	c.substeps = append(c.substeps, float64(s.Report.Substeps))
	c.speeds = append(c.speeds, s.Speed)
	if s.Report.Substeps > c.substepsMax {
		c.substepsMax = s.Report.Substeps
	}

	c.contacts += len(s.Report.Contacts)
	for _, ct := range s.Report.Contacts {
		if ct.Feature == physics.FeatureCorner {
			c.cornerContacts++
		}
	}
	c.wallHits += s.Report.Walls
	if s.Active == physics.Left {
		c.leftActive++
	}

	if c.initialSpeed > 0 {
		drift := math.Abs(s.Speed-c.initialSpeed) / c.initialSpeed
		if drift > c.maxDrift {
			c.maxDrift = drift
		}
	}
}

// ShouldFlush returns true once the current window holds windowFrames frames.
func (c *Collector) ShouldFlush() bool {
	return c.frame-c.windowStart >= int64(c.windowFrames)
}

// Flush produces a WindowStats and resets counters for the next window.
// sparks is the live spark count at window end.
func (c *Collector) Flush(sparks int) WindowStats {
	ft := Summarize(c.frameMs)
	st := Summarize(c.substeps)
	sp := Summarize(c.speeds)

	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   c.frame,
		SimTimeMs:        c.simMs,

		FrameMsMean: ft.Mean,
		FrameMsStd:  ft.Std,
		FrameMsP95:  ft.P95,
		FrameMsMax:  ft.Max,

		SubstepsMean: st.Mean,
		SubstepsMax:  c.substepsMax,

		Contacts:       c.contacts,
		CornerContacts: c.cornerContacts,
		WallHits:       c.wallHits,

		SpeedMean:  sp.Mean,
		SpeedDrift: c.maxDrift,
		Sparks:     sparks,
	}
	if n := len(c.frameMs); n > 0 {
		stats.LeftActive = float64(c.leftActive) / float64(n)
	}

	c.windowStart = c.frame
	c.frameMs = c.frameMs[:0]
	c.substeps = c.substeps[:0]
	c.speeds = c.speeds[:0]
	c.substepsMax = 0
	c.contacts = 0
	c.cornerContacts = 0
	c.wallHits = 0
	c.leftActive = 0
	c.maxDrift = 0

	return stats
}

// Pending returns the number of frames in the current, unflushed window.
func (c *Collector) Pending() int {
	return int(c.frame - c.windowStart)
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() int64 {
	return c.frame
}

// SimTimeMs returns the total simulated time.
func (c *Collector) SimTimeMs() float64 {
	return c.simMs
}

// ContactRecord is one paddle contact as written to contacts.csv.
type ContactRecord struct {
	Frame     int64   `csv:"frame"`
	SimTimeMs float64 `csv:"sim_time_ms"`
	Substep   int     `csv:"substep"`
	Side      string  `csv:"side"`
	Feature   string  `csv:"feature"`
	Corner    int     `csv:"corner"`
	PointX    float64 `csv:"point_x"`
	PointY    float64 `csv:"point_y"`
	NormalX   float64 `csv:"normal_x"`
	NormalY   float64 `csv:"normal_y"`
}

// NewContactRecord flattens a contact from the given frame.
func NewContactRecord(frame int64, simMs float64, c physics.Contact) ContactRecord {
	return ContactRecord{
		Frame:     frame,
		SimTimeMs: simMs,
		Substep:   c.Substep,
		Side:      c.Side.String(),
		Feature:   c.Feature.String(),
		Corner:    c.Corner,
		PointX:    c.Point.X,
		PointY:    c.Point.Y,
		NormalX:   c.Normal.X,
		NormalY:   c.Normal.Y,
	}
}
