package pipeline

import (
	"fmt"
	goimage "image"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/seed"
)

// Pipeline extracts ranked palettes from images.
type Pipeline struct {
	config Config
	loader image.Loader
	logger hclog.Logger
	rng    colour.RandomSource
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithLoader replaces the file loader.
func WithLoader(loader image.Loader) Option {
	return func(p *Pipeline) { p.loader = loader }
}

// WithRandomSource fixes the random source, bypassing seed calculation.
func WithRandomSource(rng colour.RandomSource) Option {
	return func(p *Pipeline) { p.rng = rng }
}

// New validates config and creates a Pipeline.
func New(config Config, opts ...Option) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	p := &Pipeline{config: config}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = hclog.NewNullLogger()
	}
	if p.loader == nil {
		p.loader = image.NewFileLoader(p.logger)
	}
	return p, nil
}

// ExtractFile loads the image at path and extracts its palette.
func (p *Pipeline) ExtractFile(path string) (*colour.Palette, error) {
	img, err := p.loader.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	p.logger.Info("loaded image", "path", path, "width", bounds.Dx(), "height", bounds.Dy())

	return p.Extract(img, path)
}

// Extract samples img, clusters the samples and ranks the clusters.
// path is only used by the filepath seed mode.
func (p *Pipeline) Extract(img goimage.Image, path string) (*colour.Palette, error) {
	samples, err := colour.Sample(img, p.config.MaxSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to sample image: %w", err)
	}
	p.logger.Debug("sampled pixels", "samples", len(samples), "max_samples", p.config.MaxSamples)

	rng := p.rng
	if rng == nil {
		s, err := seed.Calculate(img, path, p.config.Seed)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate seed: %w", err)
		}
		p.logger.Debug("calculated seed", "mode", p.config.Seed.Mode, "seed", s)
		rng = seed.NewRand(s)
	}

	extractor, err := colour.NewExtractor(p.config.Algorithm, rng, p.config.MaxIterations)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	p.logger.Info("extracting dominant colours", "count", p.config.NumColours, "algorithm", p.config.Algorithm)
	clusters, err := extractor.Extract(samples, p.config.NumColours)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}

	palette, err := colour.Rank(clusters)
	if err != nil {
		return nil, fmt.Errorf("failed to rank colours: %w", err)
	}
	return palette, nil
}
