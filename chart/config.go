package chart

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the recognised chart options. It is read from YAML, with
// every key optional; missing keys keep their defaults.
type Config struct {
	StrokeColor Color `yaml:"strokeColor"`
	AreaColor   Color `yaml:"areaColor"`
	TextColor   Color `yaml:"textColor"`
	GridColor   Color `yaml:"gridColor"`
	FlagColor   Color `yaml:"flagColor"`
	ThumbColor  Color `yaml:"thumbColor"`

	StrokeWidth  float64 `yaml:"strokeWidth"`
	HitRadius    float64 `yaml:"hitRadius"`
	MarkerRadius float64 `yaml:"markerRadius"`

	TickCount     int      `yaml:"tickCount"`
	ProgressRange int      `yaml:"progressRange"`
	SnapMode      SnapMode `yaml:"snapMode"`
	AllowNegative bool     `yaml:"allowNegative"`

	// ValueLabel and Unit are used in the value readout, e.g.
	// "Speed: 12.00 km/h".
	ValueLabel string `yaml:"valueLabel"`
	Unit       string `yaml:"unit"`

	BarHeight   float64 `yaml:"barHeight"`
	LabelHeight float64 `yaml:"labelHeight"`
	TextSize    float64 `yaml:"textSize"`
}

//go:embed config.yml
var defaultConfigYaml []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := decodeConfig(defaultConfigYaml, &cfg); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return cfg
}

// LoadConfig decodes data over the defaults. Unknown keys are an error.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := decodeConfig(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ReadConfigFile loads the config at path. An empty path means
// seekchart/config.yml in the user's config directory, which may be
// absent; an explicitly named file must exist.
func ReadConfigFile(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(configDir, "seekchart", "config.yml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("failed loading %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate rejects option values the chart cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.ProgressRange < 1 {
		errs = append(errs, fmt.Errorf("progressRange must be positive, got %d", c.ProgressRange))
	}
	if c.TickCount < 2 {
		errs = append(errs, fmt.Errorf("tickCount must be at least 2, got %d", c.TickCount))
	}
	if c.HitRadius < 0 {
		errs = append(errs, fmt.Errorf("hitRadius must not be negative, got %g", c.HitRadius))
	}
	return errors.Join(errs...)
}

// Policy returns the validation policy selected by AllowNegative.
func (c Config) Policy() ValidationPolicy {
	if c.AllowNegative {
		return PolicyAllowNegative
	}
	return PolicyNonNegative
}

func (m SnapMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *SnapMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseSnapMode(value.Value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Color is a color.NRGBA written as "#rrggbb" or "#rrggbbaa" in YAML.
type Color color.NRGBA

func (c Color) NRGBA() color.NRGBA { return color.NRGBA(c) }

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to opaque.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
