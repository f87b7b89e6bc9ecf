// Package config handles gallery configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Gap rules understood by the layout planner.
const (
	GapProportional = "proportional"
	GapConstant     = "constant"
)

// Config holds all gallery settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Gallery  GalleryConfig  `yaml:"gallery"`
	Assets   AssetsConfig   `yaml:"assets"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// GalleryConfig holds layout and camera walk settings.
type GalleryConfig struct {
	Manifest string `yaml:"manifest"` // Lineup file (YAML, JSON or TOML)

	FOV           float32 `yaml:"fov"`            // Vertical field of view, degrees
	FramingMargin float32 `yaml:"framing_margin"` // Camera distance multiplier, must be > 1
	FramingHeight float32 `yaml:"framing_height"` // Camera height as a fraction of model height

	GapRule     string  `yaml:"gap_rule"`     // proportional or constant
	GapFactor   float32 `yaml:"gap_factor"`   // Fraction of the mean neighbor width
	GapConstant float32 `yaml:"gap_constant"` // Fixed spacing in world units

	WalkBase  float64 `yaml:"walk_base"`  // Seconds added to every hop
	WalkScale float64 `yaml:"walk_scale"` // Seconds per unit of height ratio
	WalkSpeed float64 `yaml:"walk_speed"` // Divides the ratio term
	Dwell     float64 `yaml:"dwell"`      // Seconds to hold at each stop
	Ease      string  `yaml:"ease"`       // linear, power1.in, power1.out, power1.inOut, power2.out, sine.inOut
	Autoplay  bool    `yaml:"autoplay"`

	MaxConcurrentLoads int `yaml:"max_concurrent_loads"` // 0 = unlimited
}

// AssetsConfig holds asset source settings.
type AssetsConfig struct {
	Root               string `yaml:"root"`
	NameFont           string `yaml:"name_font"`
	CharacteristicFont string `yaml:"characteristic_font"`
}

// SceneConfig holds the static parts of the stage.
type SceneConfig struct {
	ClearColor  [3]float32 `yaml:"clear_color"`
	GroundColor [3]float32 `yaml:"ground_color"`
	GroundSize  float32    `yaml:"ground_size"`
	Ambient     float32    `yaml:"ambient"`
}

// AudioConfig holds ambience settings. Paths are relative to the asset root.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Music   string  `yaml:"music"` // looping WAV track
	Chime   string  `yaml:"chime"` // WAV clip played on arrival at a stop
	Volume  float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the values the gallery was tuned with.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			ScreenshotDir: "screenshots",
		},
		Gallery: GalleryConfig{
			Manifest:           "lineup.yaml",
			FOV:                45,
			FramingMargin:      1.2,
			FramingHeight:      0.55,
			GapRule:            GapProportional,
			GapFactor:          0.25,
			GapConstant:        3,
			WalkBase:           1.6,
			WalkScale:          1.0,
			WalkSpeed:          5,
			Dwell:              0,
			Ease:               "power1.out",
			Autoplay:           true,
			MaxConcurrentLoads: 8,
		},
		Assets: AssetsConfig{
			Root:               "assets",
			NameFont:           "builtin:medium",
			CharacteristicFont: "builtin:regular",
		},
		Scene: SceneConfig{
			ClearColor:  [3]float32{0, 0, 0},
			GroundColor: [3]float32{0.663, 0.663, 0.663},
			GroundSize:  50000,
			Ambient:     0.5,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.7,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values the pipeline cannot work with.
func (c *Config) Validate() error {
	var err error
	g := c.Gallery
	if g.FOV <= 0 || g.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("gallery.fov must be in (0, 180), got %g", g.FOV))
	}
	if g.FramingMargin <= 1 {
		err = multierr.Append(err, fmt.Errorf("gallery.framing_margin must be > 1, got %g", g.FramingMargin))
	}
	if g.WalkSpeed <= 0 {
		err = multierr.Append(err, fmt.Errorf("gallery.walk_speed must be > 0, got %g", g.WalkSpeed))
	}
	if g.WalkBase < 0 || g.WalkScale < 0 || g.Dwell < 0 {
		err = multierr.Append(err, errors.New("gallery walk timings must not be negative"))
	}
	switch g.GapRule {
	case GapProportional:
		if g.GapFactor < 0 {
			err = multierr.Append(err, fmt.Errorf("gallery.gap_factor must not be negative, got %g", g.GapFactor))
		}
	case GapConstant:
		if g.GapConstant < 0 {
			err = multierr.Append(err, fmt.Errorf("gallery.gap_constant must not be negative, got %g", g.GapConstant))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("gallery.gap_rule %q is not %s or %s", g.GapRule, GapProportional, GapConstant))
	}
	if a := c.Audio.Volume; a < 0 || a > 1 {
		err = multierr.Append(err, fmt.Errorf("audio.volume must be in [0, 1], got %g", a))
	}
	if g.MaxConcurrentLoads < 0 {
		err = multierr.Append(err, fmt.Errorf("gallery.max_concurrent_loads must not be negative, got %d", g.MaxConcurrentLoads))
	}
	return err
}
