package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pong/config"
)

// RunInfo identifies one session; it is written to run.yaml.
type RunInfo struct {
	RunID     string    `yaml:"run_id"`
	Seed      int64     `yaml:"seed"`
	StartedAt time.Time `yaml:"started_at"`
	Headless  bool      `yaml:"headless"`
	FrameMs   float64   `yaml:"frame_ms,omitempty"` // fixed frame time in headless mode
}

// NewRunInfo creates run metadata with a fresh random run ID.
func NewRunInfo(seed int64, headless bool) RunInfo {
	return RunInfo{
		RunID:     uuid.NewString(),
		Seed:      seed,
		StartedAt: time.Now().UTC(),
		Headless:  headless,
	}
}

// csvSink appends records to a CSV file, writing the header only once.
type csvSink struct {
	file          *os.File
	headerWritten bool
}

func (s *csvSink) write(records any) error {
	if !s.headerWritten {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return err
		}
		s.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

// OutputManager handles structured session output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	contacts  *csvSink
	perf      *csvSink
	bookmarks *csvSink
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, f := range []struct {
		name string
		sink **csvSink
	}{
		{"telemetry.csv", &om.telemetry},
		{"contacts.csv", &om.contacts},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	} {
		file, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		*f.sink = &csvSink{file: file}
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRunInfo saves the run manifest as YAML.
func (om *OutputManager) WriteRunInfo(info RunInfo) error {
	if om == nil {
		return nil
	}
	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling run info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "run.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing run.yaml: %w", err)
	}
	return nil
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteContacts appends contact records to contacts.csv.
func (om *OutputManager) WriteContacts(records []ContactRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := om.contacts.write(records); err != nil {
		return fmt.Errorf("writing contacts: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(bm Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{bm}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvSink{om.telemetry, om.contacts, om.perf, om.bookmarks} {
		if s == nil || s.file == nil {
			continue
		}
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
