// Package config loads map-generation settings from a TOML file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/network"
)

// Config holds the map-generation settings.
type Config struct {
	// ScaleFactor scales authored grid coordinates to map pixels.
	ScaleFactor int `toml:"scale_factor"`

	// LineWidth is the drawn width of a metro line, in pixels. It also
	// fixes the offset between paired same-station points.
	LineWidth int `toml:"line_width"`

	// LinePrefixLength is how many characters of a metro line's name go
	// into station identifiers. -1 uses whole line names.
	LinePrefixLength int `toml:"line_prefix_length"`

	// Lines are the metro lines to fetch stop points for, in fetch order.
	Lines []string `toml:"lines"`

	// Colors maps metro line names to their display colors, for the
	// preview renderer.
	Colors map[string]string `toml:"colors"`
}

// Default returns the configuration used when no file is given: the London
// Underground with the standard two-character identifier prefixes.
func Default() Config {
	return Config{
		ScaleFactor:      8,
		LineWidth:        10,
		LinePrefixLength: 2,
		Lines: []string{
			"bakerloo", "central", "circle", "district", "hammersmith-city",
			"jubilee", "metropolitan", "northern", "piccadilly", "victoria",
			"waterloo-city",
		},
		Colors: map[string]string{},
	}
}

// Load reads a TOML config file. Fields not present keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the generator cannot work
// with.
func (c Config) Validate() error {
	if c.ScaleFactor <= 0 {
		return errors.New(errors.ErrCodeConfig, "scale_factor must be positive, got %d", c.ScaleFactor)
	}
	if c.LineWidth <= 0 {
		return errors.New(errors.ErrCodeConfig, "line_width must be positive, got %d", c.LineWidth)
	}
	if c.LinePrefixLength < network.FullLinePrefix || c.LinePrefixLength == 0 {
		return errors.New(errors.ErrCodeConfig,
			"line_prefix_length must be positive or -1 for whole names, got %d", c.LinePrefixLength)
	}
	return nil
}
