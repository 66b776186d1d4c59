// Package pipeline runs palette extraction: load, sample, cluster, rank.
package pipeline

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/render"
	"github.com/jmylchreest/swatch/internal/seed"
)

// Limits on the number of colours that can be requested.
const (
	MinColours = 1
	MaxColours = 256
)

// Default pipeline settings.
const (
	DefaultNumColours = 5
	DefaultMaxSamples = 20000
)

// Config holds every tunable of a palette extraction run.
type Config struct {
	NumColours    int
	MaxSamples    int
	MaxIterations int
	Algorithm     colour.Algorithm
	Seed          seed.Config
	Swatch        render.SwatchOptions
	BlockWidth    int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NumColours:    DefaultNumColours,
		MaxSamples:    DefaultMaxSamples,
		MaxIterations: colour.DefaultMaxIterations,
		Algorithm:     colour.AlgorithmKMeans,
		Seed:          seed.Config{Mode: seed.ModeRandom},
		Swatch:        render.DefaultSwatchOptions(),
		BlockWidth:    render.DefaultBlockWidth,
	}
}

// ApplyEnv overlays SWATCH_* environment variables onto the config.
// Setting SWATCH_SEED without SWATCH_SEED_MODE selects manual mode.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"SWATCH_NUM_COLORS", &c.NumColours},
		{"SWATCH_MAX_SAMPLES", &c.MaxSamples},
		{"SWATCH_MAX_ITERATIONS", &c.MaxIterations},
	}
	for _, v := range ints {
		raw := getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", v.name, err)
		}
		*v.dst = n
	}

	if raw := getenv("SWATCH_SEED"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SWATCH_SEED: %w", err)
		}
		c.Seed.Value = n
		c.Seed.Mode = seed.ModeManual
	}
	if raw := getenv("SWATCH_SEED_MODE"); raw != "" {
		mode, err := seed.ParseMode(raw)
		if err != nil {
			return fmt.Errorf("invalid SWATCH_SEED_MODE: %w", err)
		}
		c.Seed.Mode = mode
	}

	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.NumColours < MinColours || c.NumColours > MaxColours {
		return fmt.Errorf("%w: number of colours must be between %d and %d, got %d",
			colour.ErrInvalidClusterCount, MinColours, MaxColours, c.NumColours)
	}
	if c.MaxSamples < 1 {
		return fmt.Errorf("max samples must be at least 1, got %d", c.MaxSamples)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if !slices.Contains(colour.ValidAlgorithms(), c.Algorithm) {
		return fmt.Errorf("unknown algorithm: %q", c.Algorithm)
	}
	if _, err := seed.ParseMode(string(c.Seed.Mode)); err != nil {
		return err
	}
	if c.Swatch.Height < 1 {
		return fmt.Errorf("swatch height must be at least 1, got %d", c.Swatch.Height)
	}
	if c.Swatch.Width < c.NumColours {
		return fmt.Errorf("swatch width %d is narrower than %d colours", c.Swatch.Width, c.NumColours)
	}
	return nil
}
