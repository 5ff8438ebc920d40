// Package config provides configuration loading and access for the camera
// rig, the motion controller and the reference host.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Schedule orders accepted in schedule.order.
const (
	OrderCameraFirst     = "camera_first"
	OrderControllerFirst = "controller_first"
)

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Camera     CameraConfig     `yaml:"camera"`
	Controller ControllerConfig `yaml:"controller"`
	Keys       KeysConfig       `yaml:"keys"`
	Collision  CollisionConfig  `yaml:"collision"`
	Players    []PlayerConfig   `yaml:"players"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FOV       float64 `yaml:"fov"`
}

// ScheduleConfig controls the tick ordering contract and the fixed step.
type ScheduleConfig struct {
	Order            string  `yaml:"order"`               // camera_first | controller_first
	FixedDT          float64 `yaml:"fixed_dt"`            // Controller tick length in seconds
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // Catch-up cap for slow frames
}

// CameraConfig holds orbit rig defaults.
type CameraConfig struct {
	Sensitivity    float64    `yaml:"sensitivity"`
	Distance       float64    `yaml:"distance"`
	MinHeight      float64    `yaml:"min_height"`
	ClampHeight    bool       `yaml:"clamp_height"`
	AlwaysFollow   bool       `yaml:"always_follow"` // Re-place the camera even without pointer motion
	Pitch          float64    `yaml:"pitch"`
	Yaw            float64    `yaml:"yaw"`
	TargetOffset   [3]float64 `yaml:"target_offset"`
	PositionOffset [3]float64 `yaml:"position_offset"`
}

// ControllerConfig holds ground movement tuning.
type ControllerConfig struct {
	RotationSpeed float64    `yaml:"rotation_speed"`
	MovementSpeed float64    `yaml:"movement_speed"`
	SprintSpeed   float64    `yaml:"sprint_speed"`
	MaxSpeed      float64    `yaml:"max_speed"` // Per-tick cap on velocity along facing
	Friction      float64    `yaml:"friction"`
	SnapRotation  bool       `yaml:"snap_rotation"`
	FacingOffset  float64    `yaml:"facing_offset"` // Aligns atan2's reference axis with the model forward
	ForwardAxis   [3]float64 `yaml:"forward_axis"`
	Radius        float64    `yaml:"radius"`
	HalfHeight    float64    `yaml:"half_height"`
}

// KeysConfig holds logical key names for movement.
type KeysConfig struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Sprint  string `yaml:"sprint"`
}

// CollisionConfig holds the static obstacle layout.
type CollisionConfig struct {
	Enabled   bool             `yaml:"enabled"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig describes one obstacle on the ground plane.
type ObstacleConfig struct {
	Kind   string  `yaml:"kind"` // box | circle | sensor
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Radius float64 `yaml:"radius"`
}

// PlayerConfig is a spawn point for one controller/rig pair.
type PlayerConfig struct {
	ID uint8   `yaml:"id"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  float64 `yaml:"z"`
}

// TelemetryConfig holds trace and perf settings.
type TelemetryConfig struct {
	TraceEvery int `yaml:"trace_every"` // Record every Nth controller tick
	PerfWindow int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FixedDT32   float32 // Schedule.FixedDT as float32
	CameraFirst bool    // Schedule.Order == camera_first
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Set replaces the global configuration, e.g. after a hot reload.
func Set(cfg *Config) {
	global = cfg
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the tick functions cannot work with.
func (c *Config) validate() error {
	switch c.Schedule.Order {
	case OrderCameraFirst, OrderControllerFirst:
	default:
		return fmt.Errorf("schedule.order: unknown value %q", c.Schedule.Order)
	}
	if c.Schedule.FixedDT <= 0 {
		return fmt.Errorf("schedule.fixed_dt: must be positive, got %v", c.Schedule.FixedDT)
	}
	if c.Camera.Distance < 0 {
		return fmt.Errorf("camera.distance: must not be negative, got %v", c.Camera.Distance)
	}
	ctl := c.Controller
	if ctl.Friction < 0 || ctl.MovementSpeed < 0 || ctl.SprintSpeed < 0 || ctl.MaxSpeed < 0 || ctl.RotationSpeed < 0 {
		return fmt.Errorf("controller: speeds and friction must not be negative")
	}
	for i, ob := range c.Collision.Obstacles {
		switch ob.Kind {
		case "box", "circle", "sensor":
		default:
			return fmt.Errorf("collision.obstacles[%d]: unknown kind %q", i, ob.Kind)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FixedDT32 = float32(c.Schedule.FixedDT)
	c.Derived.CameraFirst = c.Schedule.Order == OrderCameraFirst

	if c.Schedule.MaxStepsPerFrame < 1 {
		c.Schedule.MaxStepsPerFrame = 1
	}
	if c.Telemetry.TraceEvery < 1 {
		c.Telemetry.TraceEvery = 1
	}
	if len(c.Players) == 0 {
		c.Players = []PlayerConfig{{ID: 0, Y: 1}}
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
