package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/scanline/pkg/scanline/constants"
)

// Duration is a time.Duration that decodes from strings such as "30ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type PanelConfig struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	BandHeight int `toml:"band_height"`
}

type RefreshConfig struct {
	Period        Duration `toml:"period"`
	DirtyCapacity int      `toml:"dirty_capacity"`
}

type AnimationConfig struct {
	Period       Duration `toml:"period"`
	Slots        int      `toml:"slots"`
	Duration     Duration `toml:"duration"`
	DestroyDelay Duration `toml:"destroy_delay"`
}

type StackConfig struct {
	Depth int `toml:"depth"`
}

type LogConfig struct {
	Level         string `toml:"level"`
	InternalLevel string `toml:"internal_level"`
	Path          string `toml:"path"`
}

type InputConfig struct {
	Device string `toml:"device"`
}

// Config is the on-disk configuration of a compositor.
type Config struct {
	Panel     PanelConfig     `toml:"panel"`
	Refresh   RefreshConfig   `toml:"refresh"`
	Animation AnimationConfig `toml:"animation"`
	Stack     StackConfig     `toml:"stack"`
	Log       LogConfig       `toml:"log"`
	Input     InputConfig     `toml:"input"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

func DefaultConfig() Config {
	return Config{
		Panel: PanelConfig{
			Width:      constants.DefaultPanelWidth,
			Height:     constants.DefaultPanelHeight,
			BandHeight: constants.DefaultBandHeight,
		},
		Refresh: RefreshConfig{
			Period:        Duration{constants.DefaultRefreshPeriod},
			DirtyCapacity: constants.DefaultDirtyCapacity,
		},
		Animation: AnimationConfig{
			Period:       Duration{constants.DefaultAnimPeriod},
			Slots:        constants.DefaultAnimSlots,
			Duration:     Duration{constants.DefaultTransitionTime},
			DestroyDelay: Duration{constants.DefaultDestroyDelay},
		},
		Stack: StackConfig{Depth: constants.DefaultStackDepth},
		Log:   LogConfig{Level: "info", InternalLevel: "error"},
		Input: InputConfig{Device: constants.DefaultTouchDevicePath},
	}
}

// ParseConfig decodes TOML on top of the defaults. Keys that are not part of
// the configuration are reported as an error so typos do not go unnoticed.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(string(data))
}

// LoadConfigFromEnv loads the file named by SCANLINE_CONFIG, or the defaults
// when it is unset, then applies the environment overrides.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(constants.ConfigEnvVar); path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(constants.TouchDeviceEnvVar); v != "" {
		c.Input.Device = v
	}
	if constants.IsDevMode() {
		c.Log.InternalLevel = "debug"
	}
	c.Panel.Width = envInt(constants.WindowWidthEnvVar, c.Panel.Width)
	c.Panel.Height = envInt(constants.WindowHeightEnvVar, c.Panel.Height)
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		GetInternalLogger().Warn("Invalid "+name+"; using configured value", "value", v, "error", err)
		return fallback
	}
	return n
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Panel.Width <= 0 || c.Panel.Height <= 0:
		return fmt.Errorf("%w: panel %dx%d", ErrInvalidConfig, c.Panel.Width, c.Panel.Height)
	case c.Panel.BandHeight <= 0:
		return fmt.Errorf("%w: band_height %d", ErrInvalidConfig, c.Panel.BandHeight)
	case c.Refresh.DirtyCapacity < 2:
		return fmt.Errorf("%w: dirty_capacity %d", ErrInvalidConfig, c.Refresh.DirtyCapacity)
	case c.Refresh.Period.Duration <= 0 || c.Animation.Period.Duration <= 0:
		return fmt.Errorf("%w: periods must be positive", ErrInvalidConfig)
	case c.Animation.Slots <= 0:
		return fmt.Errorf("%w: animation slots %d", ErrInvalidConfig, c.Animation.Slots)
	case c.Stack.Depth <= 0:
		return fmt.Errorf("%w: stack depth %d", ErrInvalidConfig, c.Stack.Depth)
	}
	return nil
}
