// Package config loads the studio configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Config is the studio configuration.
type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Brush   BrushConfig   `yaml:"brush"`
	History HistoryConfig `yaml:"history"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// CanvasConfig sets the backing resolution and the clear colour.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// BrushConfig holds the initial brush and the size range offered by the UI.
type BrushConfig struct {
	Color      string `yaml:"color"`
	Fill       string `yaml:"fill"`
	Size       int    `yaml:"size"`
	EraserSize int    `yaml:"eraser_size"`
	MinSize    int    `yaml:"min_size"`
	MaxSize    int    `yaml:"max_size"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// ExportConfig names the file offered on save.
type ExportConfig struct {
	Filename string `yaml:"filename"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfigPath is where LoadDefault looks for the configuration.
const DefaultConfigPath = "kolam.yaml"

// Default values for fields left empty.
const (
	DefaultWidth      = 900
	DefaultHeight     = 600
	DefaultBackground = "#ffffff"
	DefaultColor      = "#ff5722"
	DefaultSize       = 3
	DefaultEraserSize = 20
	DefaultMinSize    = 1
	DefaultMaxSize    = 80
	DefaultCapacity   = 100
	DefaultFilename   = "kolam-canvas.png"
	DefaultLevel      = "info"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads and parses the configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads DefaultConfigPath. A missing file yields the defaults.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = DefaultWidth
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = DefaultHeight
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = DefaultBackground
	}
	if c.Brush.Color == "" {
		c.Brush.Color = DefaultColor
	}
	if c.Brush.MinSize == 0 {
		c.Brush.MinSize = DefaultMinSize
	}
	if c.Brush.MaxSize == 0 {
		c.Brush.MaxSize = DefaultMaxSize
	}
	if c.Brush.Size == 0 {
		c.Brush.Size = DefaultSize
	}
	if c.Brush.EraserSize == 0 {
		c.Brush.EraserSize = DefaultEraserSize
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = DefaultCapacity
	}
	if c.Export.Filename == "" {
		c.Export.Filename = DefaultFilename
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLevel
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	b := c.Brush
	if b.MinSize < 1 || b.MaxSize < b.MinSize {
		errs = append(errs, fmt.Errorf("brush size range %d..%d is invalid", b.MinSize, b.MaxSize))
	} else {
		if b.Size < b.MinSize || b.Size > b.MaxSize {
			errs = append(errs, fmt.Errorf("brush.size %d outside %d..%d", b.Size, b.MinSize, b.MaxSize))
		}
		if b.EraserSize < b.MinSize || b.EraserSize > b.MaxSize {
			errs = append(errs, fmt.Errorf("brush.eraser_size %d outside %d..%d", b.EraserSize, b.MinSize, b.MaxSize))
		}
	}
	for name, v := range map[string]string{
		"canvas.background": c.Canvas.Background,
		"brush.color":       b.Color,
	} {
		if _, err := ParseColor(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if b.Fill != "" {
		if _, err := ParseColor(b.Fill); err != nil {
			errs = append(errs, fmt.Errorf("brush.fill: %w", err))
		}
	}
	if c.History.Capacity < 1 {
		errs = append(errs, fmt.Errorf("history.capacity %d must be at least 1", c.History.Capacity))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Background returns the parsed canvas colour.
func (c *Config) Background() color.NRGBA {
	bg, _ := ParseColor(c.Canvas.Background)
	return bg
}

// BrushColor returns the parsed brush colour.
func (c *Config) BrushColor() color.NRGBA {
	col, _ := ParseColor(c.Brush.Color)
	return col
}

// FillColor returns the parsed fill colour, or nil when filling is off.
func (c *Config) FillColor() *color.NRGBA {
	if c.Brush.Fill == "" {
		return nil
	}
	f, err := ParseColor(c.Brush.Fill)
	if err != nil {
		return nil
	}
	return &f
}

// Level returns the slog level named by log.level.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

// ParseColor parses #rgb, #rgba, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("colour %q: want #rgb, #rgba, #rrggbb or #rrggbbaa", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return color.NRGBA{}, fmt.Errorf("colour %q: invalid hex digit %q", s, r)
		}
	}
	c := gg.Hex(hex)
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}, nil
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
