package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/pong/physics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Arena.Width != 800 || cfg.Arena.Height != 600 {
		t.Errorf("arena = %gx%g, want 800x600", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Derived.Shape != physics.ShapeCapsule {
		t.Errorf("shape = %v, want capsule", cfg.Derived.Shape)
	}
	if cfg.Derived.EdgeMode != physics.EdgeGated {
		t.Errorf("edge mode = %v, want gated", cfg.Derived.EdgeMode)
	}
	if cfg.Derived.InitialActive != physics.Right {
		t.Errorf("initial active = %v, want right", cfg.Derived.InitialActive)
	}
	if cfg.Derived.BallStart.X != 400 || cfg.Derived.BallStart.Y != 300 {
		t.Errorf("ball start = %v, want arena centre", cfg.Derived.BallStart)
	}
	if cfg.Derived.ScreenW != 800 || cfg.Derived.ScreenH != 600 {
		t.Errorf("screen = %dx%d, want arena size", cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	}

	prm, err := cfg.PhysicsParams()
	if err != nil {
		t.Fatalf("PhysicsParams: %v", err)
	}
	if prm.MaxSubstepMs != 5 || prm.PaddleSpeed != 0.5 {
		t.Errorf("params = %+v", prm)
	}
	if b := cfg.InitialBall(); b.Radius != 20 || b.Vel.X != 0.3 || b.Vel.Y != 0.4 {
		t.Errorf("initial ball = %+v", b)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
ball:
  x: 100
  y: 50
paddle:
  shape: rounded
  corner_radius: 6
physics:
  edge_mode: legacy
  max_substep_ms: 2
screen:
  width: 1280
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.Shape != physics.ShapeRounded || cfg.Paddle.CornerRadius != 6 {
		t.Errorf("paddle = %+v", cfg.Paddle)
	}
	if cfg.Derived.EdgeMode != physics.EdgeLegacy {
		t.Errorf("edge mode = %v, want legacy", cfg.Derived.EdgeMode)
	}
	if cfg.Physics.MaxSubstepMs != 2 {
		t.Errorf("max substep = %g, want 2", cfg.Physics.MaxSubstepMs)
	}
	// Untouched sections keep their defaults
	if cfg.Paddle.Width != 25 || cfg.Ball.Radius != 20 {
		t.Errorf("defaults lost: paddle width %g, ball radius %g", cfg.Paddle.Width, cfg.Ball.Radius)
	}
	if cfg.Derived.BallStart.X != 100 || cfg.Derived.BallStart.Y != 50 {
		t.Errorf("ball start = %v, want (100, 50)", cfg.Derived.BallStart)
	}
	if cfg.Derived.ScreenW != 1280 || cfg.Derived.ScreenH != 600 {
		t.Errorf("screen = %dx%d, want 1280x600", cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown shape", "paddle:\n  shape: hexagon\n", "paddle.shape"},
		{"unknown edge mode", "physics:\n  edge_mode: sticky\n", "physics.edge_mode"},
		{"unknown side", "paddle:\n  initial_active: middle\n", "paddle.initial_active"},
		{"zero substep", "physics:\n  max_substep_ms: 0\n", "invalid physics parameters"},
		{"negative ball radius", "ball:\n  radius: -1\n", "ball.radius"},
		{"paddle taller than arena", "paddle:\n  height: 700\n", "invalid physics parameters"},
		{"rounded radius too large", "paddle:\n  shape: rounded\n  corner_radius: 20\n", "invalid physics parameters"},
		{"padding swallows arena", "arena:\n  h_padding: 400\n", "arena.h_padding"},
		{"empty telemetry window", "telemetry:\n  window_frames: 0\n", "telemetry.window_frames"},
		{"malformed yaml", "ball: [1, 2\n", "parsing config file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Paddle.Speed = 0.75

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Paddle.Speed != 0.75 {
		t.Errorf("speed = %g, want 0.75", back.Paddle.Speed)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic")
		}
	}()
	Cfg()
}

func TestDeriveAfterEdit(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	cfg.Paddle.Shape = "rounded"
	cfg.Physics.EdgeMode = "legacy"
	if err := cfg.Derive(); err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if cfg.Derived.Shape != physics.ShapeRounded || cfg.Derived.EdgeMode != physics.EdgeLegacy {
		t.Errorf("derived = %+v", cfg.Derived)
	}

	cfg.Physics.MaxSubstepMs = -1
	if err := cfg.Derive(); err == nil {
		t.Error("expected error for negative substep cap")
	}
}
