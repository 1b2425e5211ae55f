// Package config provides configuration loading and access for the swarm.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all swarm configuration parameters.
type Config struct {
	Screen    ScreenConfig             `yaml:"screen"`
	Surface   SurfaceConfig            `yaml:"surface"`
	Swarm     SwarmConfig              `yaml:"swarm"`
	Variants  map[string]VariantConfig `yaml:"variants"`
	Device    DeviceConfig             `yaml:"device"`
	Activity  ActivityConfig           `yaml:"activity"`
	Resize    ResizeConfig             `yaml:"resize"`
	Gallery   GalleryConfig            `yaml:"gallery"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings for the graphical host.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SurfaceConfig describes how the hero surface is sized from the viewport.
type SurfaceConfig struct {
	HeightFraction     float64 `yaml:"height_fraction"`       // Hero height as a fraction of viewport height
	MinHeight          float64 `yaml:"min_height"`            // Hero height floor in logical pixels
	MaxPixelRatio      float64 `yaml:"max_pixel_ratio"`       // DPR cap for pointer devices
	MaxPixelRatioTouch float64 `yaml:"max_pixel_ratio_touch"` // DPR cap for touch devices
	TrailColor         []int   `yaml:"trail_color"`           // RGB of the translucent trail fill
}

// SwarmConfig holds parameters shared by every variant.
type SwarmConfig struct {
	Variant            string    `yaml:"variant"`              // desktop-hero or gallery
	Noise              string    `yaml:"noise"`                // simplex or opensimplex
	NoiseSeed          int64     `yaml:"noise_seed"`           // Seed for opensimplex (simplex is fixed)
	MinLife            float64   `yaml:"min_life"`             // Lifespan lower bound in steps
	MaxLife            float64   `yaml:"max_life"`             // Lifespan upper bound in steps (exclusive)
	NoiseScale         float64   `yaml:"noise_scale"`          // Pixels to noise-space factor
	TimeDivisor        float64   `yaml:"time_divisor"`         // Milliseconds per unit of noise time (before time scale)
	RandomForceDivisor float64   `yaml:"random_force_divisor"` // Random impulse = rand * random_force / this
	HueStep            float64   `yaml:"hue_step"`             // Hue advance per step in degrees
	CullMargin         float64   `yaml:"cull_margin"`          // Skip drawing beyond bounds by this much
	Saturation         float64   `yaml:"saturation"`           // Glow saturation [0,1]
	GlowSpread         float64   `yaml:"glow_spread"`          // Gradient extent as a multiple of radius
	GlowStops          []float64 `yaml:"glow_stops"`           // Alpha multipliers at offsets 0, 0.6, 1
}

// VariantConfig is one named tuning set with its boundary policy.
type VariantConfig struct {
	Boundary    string       `yaml:"boundary"` // reset or wrap
	Constrained BundleConfig `yaml:"constrained"`
	Full        BundleConfig `yaml:"full"`
}

// BundleConfig holds the tunables of one performance profile.
type BundleConfig struct {
	AreaPerParticle float64 `yaml:"area_per_particle"` // Viewport px² per particle
	MaxParticles    int     `yaml:"max_particles"`     // Cap on particle count
	UpdateEvery     int     `yaml:"update_every"`      // Step particles every Nth frame
	RandomForce     float64 `yaml:"random_force"`      // Random impulse magnitude
	TrailOpacity    float64 `yaml:"trail_opacity"`     // Alpha of the per-frame trail fill
	NoiseGain       float64 `yaml:"noise_gain"`        // Weight of the noise sample in forcing
	Damping         float64 `yaml:"damping"`           // Velocity multiplier per step
	TimeScale       float64 `yaml:"time_scale"`        // Noise time flow multiplier
	MaxVelocity     float64 `yaml:"max_velocity"`      // Velocity magnitude cap
	PositionScale   float64 `yaml:"position_scale"`    // Displacement per unit velocity
}

// DeviceConfig holds device capability overrides and heuristics thresholds.
type DeviceConfig struct {
	Class            string  `yaml:"class"`              // "" = detect, or constrained/full
	Touch            bool    `yaml:"touch"`              // Treat input as coarse (touch)
	Cores            int     `yaml:"cores"`              // 0 = runtime.NumCPU
	MemoryGB         float64 `yaml:"memory_gb"`          // 0 = probe
	LowEndCores      int     `yaml:"low_end_cores"`      // Cores at or below this are low-end
	LowEndMemoryGB   float64 `yaml:"low_end_memory_gb"`  // Memory at or below this is low-end
	SmallScreenWidth float64 `yaml:"small_screen_width"` // Viewports at or below this width count as small
}

// ActivityConfig holds inactivity pause parameters.
type ActivityConfig struct {
	PauseTimeout float64 `yaml:"pause_timeout"` // Seconds without activity before pausing
}

// ResizeConfig holds resize coalescing parameters.
type ResizeConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// GalleryConfig holds physics gallery parameters.
type GalleryConfig struct {
	Size float64 `yaml:"size"` // Logical edge length of each demo surface
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PauseTimeout   time.Duration
	ResizeDebounce time.Duration
	TrailColor     color.RGBA
	VariantNames   []string // Sorted variant names
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

// Variant returns the named variant tuning.
func (c *Config) Variant(name string) (VariantConfig, bool) {
	v, ok := c.Variants[name]
	return v, ok
}

func (c *Config) validate() error {
	if _, ok := c.Variants[c.Swarm.Variant]; !ok {
		return fmt.Errorf("unknown swarm variant %q", c.Swarm.Variant)
	}
	for name, v := range c.Variants {
		if v.Boundary != "reset" && v.Boundary != "wrap" {
			return fmt.Errorf("variant %q: boundary must be reset or wrap, got %q", name, v.Boundary)
		}
		for _, b := range []BundleConfig{v.Constrained, v.Full} {
			if b.UpdateEvery < 1 {
				return fmt.Errorf("variant %q: update_every must be >= 1", name)
			}
			if b.AreaPerParticle <= 0 {
				return fmt.Errorf("variant %q: area_per_particle must be positive", name)
			}
		}
	}
	if c.Swarm.MaxLife <= c.Swarm.MinLife {
		return fmt.Errorf("swarm: max_life (%v) must exceed min_life (%v)", c.Swarm.MaxLife, c.Swarm.MinLife)
	}
	if len(c.Swarm.GlowStops) != 3 {
		return fmt.Errorf("swarm: glow_stops needs 3 values, got %d", len(c.Swarm.GlowStops))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PauseTimeout = time.Duration(c.Activity.PauseTimeout * float64(time.Second))
	c.Derived.ResizeDebounce = time.Duration(c.Resize.DebounceMS) * time.Millisecond

	c.Derived.TrailColor = color.RGBA{R: 26, G: 35, B: 50, A: 255}
	if len(c.Surface.TrailColor) == 3 {
		c.Derived.TrailColor = color.RGBA{
			R: clampByte(c.Surface.TrailColor[0]),
			G: clampByte(c.Surface.TrailColor[1]),
			B: clampByte(c.Surface.TrailColor[2]),
			A: 255,
		}
	}

	c.Derived.VariantNames = c.Derived.VariantNames[:0]
	for name := range c.Variants {
		c.Derived.VariantNames = append(c.Derived.VariantNames, name)
	}
	sort.Strings(c.Derived.VariantNames)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
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
