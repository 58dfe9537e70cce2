// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/morph/tween"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Asset     AssetConfig     `yaml:"asset"`
	Particles ParticlesConfig `yaml:"particles"`
	Morph     MorphConfig     `yaml:"morph"`
	Autoplay  AutoplayConfig  `yaml:"autoplay"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"` // Device pixel ratio cap for the resolution uniform
	ClearColor    string  `yaml:"clear_color"`
}

// CameraConfig holds the perspective camera and orbit control settings.
type CameraConfig struct {
	FOV         float64 `yaml:"fov"` // Vertical field of view in degrees
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Distance    float64 `yaml:"distance"` // Initial orbit radius
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Damping     float64 `yaml:"damping"` // Fraction of pending rotation applied per frame (0 = no damping)
	RotateSpeed float64 `yaml:"rotate_speed"`
	ZoomSpeed   float64 `yaml:"zoom_speed"`
}

// AssetConfig holds the model source.
type AssetConfig struct {
	Path      string  `yaml:"path"`      // .glb/.gltf/.csv; empty = procedural shapes
	Normalize float64 `yaml:"normalize"` // Rescale each shape to this extent (0 = keep model units)
}

// ParticlesConfig holds particle appearance.
type ParticlesConfig struct {
	Size         float64 `yaml:"size"`
	ColorA       string  `yaml:"color_a"`
	ColorB       string  `yaml:"color_b"`
	InitialIndex int     `yaml:"initial_index"`
}

// MorphConfig holds progress ramp parameters.
type MorphConfig struct {
	Duration float64 `yaml:"duration"` // Ramp length in seconds
	Ease     string  `yaml:"ease"`     // "none", "power2.inOut", "sine.out", ...
	Restart  string  `yaml:"restart"`  // "zero" or "progress"
	Stagger  float64 `yaml:"stagger"`  // Per-particle delay fraction in [0,1)
}

// AutoplayConfig holds the scripted morph sequence.
type AutoplayConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Interval float64 `yaml:"interval"` // Seconds between morph triggers
	Sequence []int   `yaml:"sequence"` // Shape indices; empty = cycle through all shapes
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per frame stats window
}

// RestartPolicy mirrors morph.RestartPolicy without importing it.
type RestartPolicy uint8

const (
	RestartZero RestartPolicy = iota
	RestartProgress
)

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ClearColor color.RGBA
	ColorA     color.RGBA
	ColorB     color.RGBA
	Restart    RestartPolicy
	Ease       tween.Ease
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived parses colours and enums and clamps ranges.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.ClearColor, err = ParseHexColor(c.Screen.ClearColor); err != nil {
		return fmt.Errorf("screen.clear_color: %w", err)
	}
	if c.Derived.ColorA, err = ParseHexColor(c.Particles.ColorA); err != nil {
		return fmt.Errorf("particles.color_a: %w", err)
	}
	if c.Derived.ColorB, err = ParseHexColor(c.Particles.ColorB); err != nil {
		return fmt.Errorf("particles.color_b: %w", err)
	}

	switch strings.ToLower(c.Morph.Restart) {
	case "", "zero":
		c.Derived.Restart = RestartZero
	case "progress":
		c.Derived.Restart = RestartProgress
	default:
		return fmt.Errorf("morph.restart: unknown policy %q", c.Morph.Restart)
	}

	if c.Derived.Ease, err = tween.ByName(c.Morph.Ease); err != nil {
		return fmt.Errorf("morph.ease: %w", err)
	}

	if c.Morph.Stagger < 0 || c.Morph.Stagger >= 1 {
		return fmt.Errorf("morph.stagger: %v outside [0,1)", c.Morph.Stagger)
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		c.Camera.MinDistance, c.Camera.MaxDistance = c.Camera.MaxDistance, c.Camera.MinDistance
	}
	return nil
}

// ParseHexColor parses "#rrggbb", "#rrggbbaa" or "#rgb" (leading # optional).
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats c as "#rrggbb", dropping alpha.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
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
