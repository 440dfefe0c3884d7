// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/pong/physics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Ball      BallConfig      `yaml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Effects   EffectsConfig   `yaml:"effects"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`  // 0 = arena width
	Height    int  `yaml:"height"` // 0 = arena height
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// ArenaConfig holds the playfield dimensions in arena units.
type ArenaConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	HPadding float64 `yaml:"h_padding"` // gap between side wall and paddle
}

// BallConfig holds the ball's size and starting state.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"` // x = y = 0 starts at the arena centre
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"` // units per millisecond
	VY     float64 `yaml:"vy"`
}

// PaddleConfig holds paddle geometry and control parameters.
type PaddleConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`          // units per millisecond
	Shape         string  `yaml:"shape"`          // rect, capsule, rounded
	CornerRadius  float64 `yaml:"corner_radius"`  // rounded only
	InitialActive string  `yaml:"initial_active"` // left, right
}

// PhysicsConfig holds integrator parameters.
type PhysicsConfig struct {
	MaxSubstepMs float64 `yaml:"max_substep_ms"`
	EdgeMode     string  `yaml:"edge_mode"`      // gated, legacy
	FirstFrameMs float64 `yaml:"first_frame_ms"` // frame time used before the clock has a previous sample
}

// EffectsConfig holds contact spark parameters.
type EffectsConfig struct {
	Enabled          bool    `yaml:"enabled"`
	SparksPerContact int     `yaml:"sparks_per_contact"`
	LifetimeMs       float64 `yaml:"lifetime_ms"`
	Speed            float64 `yaml:"speed"`  // units per millisecond
	Spread           float64 `yaml:"spread"` // radians either side of the contact normal
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"`
	PerfWindow   int `yaml:"perf_window"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	ScreenW, ScreenH int32
	Shape            physics.ShapeKind
	EdgeMode         physics.EdgeMode
	InitialActive    physics.Side
	BallStart        r2.Vec
}

var global *Config

// Init loads configuration and sets it as the global config.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Derive(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Derive recomputes derived values and validates. Call it after editing a
// loaded config in code.
func (c *Config) Derive() error {
	if err := c.computeDerived(); err != nil {
		return err
	}
	return c.Validate()
}

// computeDerived parses enums and fills defaults that depend on other values.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.Shape, err = physics.ParseShapeKind(c.Paddle.Shape); err != nil {
		return fmt.Errorf("paddle.shape: %w", err)
	}
	if c.Derived.EdgeMode, err = physics.ParseEdgeMode(c.Physics.EdgeMode); err != nil {
		return fmt.Errorf("physics.edge_mode: %w", err)
	}
	if c.Derived.InitialActive, err = physics.ParseSide(c.Paddle.InitialActive); err != nil {
		return fmt.Errorf("paddle.initial_active: %w", err)
	}

	c.Derived.BallStart = r2.Vec{X: c.Ball.X, Y: c.Ball.Y}
	if c.Ball.X == 0 && c.Ball.Y == 0 {
		c.Derived.BallStart = r2.Vec{X: c.Arena.Width / 2, Y: c.Arena.Height / 2}
	}

	// Window defaults to one screen pixel per arena unit
	w, h := c.Screen.Width, c.Screen.Height
	if w == 0 {
		w = int(c.Arena.Width)
	}
	if h == 0 {
		h = int(c.Arena.Height)
	}
	c.Derived.ScreenW, c.Derived.ScreenH = int32(w), int32(h)
	return nil
}

// Validate checks values the physics parameters do not cover.
func (c *Config) Validate() error {
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball.radius must be positive, got %g", c.Ball.Radius)
	}
	if c.Arena.HPadding < 0 || 2*(c.Arena.HPadding+c.Paddle.Width) >= c.Arena.Width {
		return fmt.Errorf("arena.h_padding %g leaves no room between paddles", c.Arena.HPadding)
	}
	if c.Physics.FirstFrameMs < 0 {
		return fmt.Errorf("physics.first_frame_ms must not be negative, got %g", c.Physics.FirstFrameMs)
	}
	if c.Effects.SparksPerContact < 0 || c.Effects.LifetimeMs < 0 {
		return fmt.Errorf("effects: negative spark count or lifetime")
	}
	if c.Telemetry.WindowFrames < 1 {
		return fmt.Errorf("telemetry.window_frames must be at least 1, got %d", c.Telemetry.WindowFrames)
	}
	if _, err := c.PhysicsParams(); err != nil {
		return err
	}
	return nil
}

// PhysicsParams converts the config into simulation parameters.
func (c *Config) PhysicsParams() (physics.Params, error) {
	p := physics.Params{
		ArenaWidth:  c.Arena.Width,
		ArenaHeight: c.Arena.Height,
		Body: physics.Body{
			Width:  c.Paddle.Width,
			Height: c.Paddle.Height,
			Shape:  physics.Shape{Kind: c.Derived.Shape, Radius: c.Paddle.CornerRadius},
		},
		PaddleSpeed:  c.Paddle.Speed,
		MaxSubstepMs: c.Physics.MaxSubstepMs,
		EdgeMode:     c.Derived.EdgeMode,
	}
	if err := p.Validate(); err != nil {
		return physics.Params{}, err
	}
	return p, nil
}

// InitialBall returns the ball at its configured starting state.
func (c *Config) InitialBall() physics.Ball {
	return physics.Ball{
		Pos:    c.Derived.BallStart,
		Vel:    r2.Vec{X: c.Ball.VX, Y: c.Ball.VY},
		Radius: c.Ball.Radius,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
