package sview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds viewer settings.
//
// Use DefaultConfig and the With* methods to build one:
//
//	cfg := sview.DefaultConfig().WithTitle("flow").WithSize(1280, 720)
type Config struct {
	// Title is the window title.
	Title string `toml:"title" yaml:"title"`

	// Width and Height are the initial window size.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// MaxFPS caps the frame rate. Zero leaves the loop uncapped, bounded only
	// by buffer swap latency.
	MaxFPS int `toml:"max_fps" yaml:"max_fps"`

	// QueueLimit bounds the number of pending submissions. When full, the
	// oldest submission is dropped and its pictures released. Zero means
	// unbounded.
	QueueLimit int `toml:"queue_limit" yaml:"queue_limit"`

	// GlyphSize is the caption glyph size in pixels.
	GlyphSize int `toml:"glyph_size" yaml:"glyph_size"`

	// CaptionMaxWidth and CaptionMaxHeight clamp rasterized captions.
	CaptionMaxWidth  int `toml:"caption_max_width" yaml:"caption_max_width"`
	CaptionMaxHeight int `toml:"caption_max_height" yaml:"caption_max_height"`

	// Locale selects number formatting for widget values, as a BCP 47 tag.
	Locale string `toml:"locale" yaml:"locale"`
}

// DefaultConfig returns the default viewer configuration.
func DefaultConfig() Config {
	return Config{
		Title:            "sview",
		Width:            640,
		Height:           480,
		GlyphSize:        8,
		CaptionMaxWidth:  640,
		CaptionMaxHeight: 480,
		Locale:           "en",
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the initial window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithMaxFPS returns a copy of c with the frame rate cap set.
func (c Config) WithMaxFPS(fps int) Config {
	c.MaxFPS = fps
	return c
}

// WithQueueLimit returns a copy of c with the pending queue bound set.
func (c Config) WithQueueLimit(n int) Config {
	c.QueueLimit = n
	return c
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, c.Width, c.Height)
	case c.MaxFPS < 0:
		return fmt.Errorf("sview: invalid max_fps %d", c.MaxFPS)
	case c.QueueLimit < 0:
		return fmt.Errorf("sview: invalid queue_limit %d", c.QueueLimit)
	case c.GlyphSize <= 0:
		return fmt.Errorf("sview: invalid glyph_size %d", c.GlyphSize)
	case c.CaptionMaxWidth <= 0 || c.CaptionMaxHeight <= 0:
		return fmt.Errorf("sview: invalid caption bounds %dx%d", c.CaptionMaxWidth, c.CaptionMaxHeight)
	}
	return nil
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of
// DefaultConfig. Settings missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sview: read config: %w", err)
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		return Config{}, fmt.Errorf("sview: unknown config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("sview: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures a Viewer during creation.
type Option func(*viewerOptions)

// viewerOptions holds optional configuration for Viewer creation.
type viewerOptions struct {
	widgets []Widget
}

// WithWidgets sets the widgets shown in the side panel. The slice is owned
// by the caller and must stay valid, and unmodified, for the viewer's
// lifetime.
func WithWidgets(widgets []Widget) Option {
	return func(o *viewerOptions) {
		o.widgets = widgets
	}
}
