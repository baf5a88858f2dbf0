// Package stereopipe provides a high-level API for running the stereo
// reconstruction pipeline.
package stereopipe

import (
	"github.com/user/stereopipe/pkg/orchestrator"
	"github.com/user/stereopipe/pkg/ports"
)

// SensorPreset represents a satellite sensor preset name.
type SensorPreset string

const (
	SensorSPOT     SensorPreset = "spot"
	SensorPleiades SensorPreset = "pleiades"
)

// Config represents the configuration for a pipeline run.
type Config struct {
	// Projection
	ProjectionFile string // Coordinate system definition file (in the input dir)
	SRS            string // Output spatial reference, e.g. "EPSG:32638"

	// File matching
	ImagePattern  string // Images for tie-point extraction
	AdjustPattern string // Images for bundle adjustment
	PairPattern   string // Capture pattern pairing images with RPC files
	RPCPattern    string // RPC reference pattern

	// Tie points
	Resolution int // Working resolution; -1 = full resolution

	// Orientation
	InitialOrientation  string
	AdjustedOrientation string
	Degree              int // Polynomial correction degree

	// Surface
	MaltMode          string
	CorrelationWindow int
	Regularization    float64
	MinVisibleImages  int
	ShadeMode         string
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with SPOT preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: spotDefaults(),
	}
}

// NewPleiadesConfigBuilder creates a new ConfigBuilder with Pleiades preset
// defaults.
func NewPleiadesConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: pleiadesDefaults(),
	}
}

// NewPresetConfigBuilder creates a ConfigBuilder for the named preset.
// Unknown presets fall back to SPOT.
func NewPresetConfigBuilder(preset SensorPreset) *ConfigBuilder {
	if preset == SensorPleiades {
		return NewPleiadesConfigBuilder()
	}
	return NewConfigBuilder()
}

// spotDefaults returns the SPOT 6/7 preset configuration.
func spotDefaults() Config {
	return Config{
		ProjectionFile: "WGS84toUTM.xml",
		SRS:            "EPSG:32638",

		ImagePattern:  ".*.TIF",
		AdjustPattern: ".*TIF",
		PairPattern:   "(.*).TIF",
		RPCPattern:    "$1.XML",

		Resolution: -1,

		InitialOrientation:  "RPC-d0",
		AdjustedOrientation: "RPC-d0-adj",
		Degree:              0,

		MaltMode:          "UrbanMNE",
		CorrelationWindow: 2,
		Regularization:    0.2,
		MinVisibleImages:  2,
		ShadeMode:         "IgnE",
	}
}

// pleiadesDefaults returns the Pleiades preset configuration. Pleiades
// deliveries name their rasters and RPC files in lower case.
func pleiadesDefaults() Config {
	cfg := spotDefaults()
	cfg.ImagePattern = ".*.tif"
	cfg.AdjustPattern = ".*tif"
	cfg.PairPattern = "(.*).tif"
	cfg.RPCPattern = "RPC_$1.XML"
	return cfg
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.CorrelationWindow < 1 {
		cfg.CorrelationWindow = 1
	}
	if cfg.MinVisibleImages < 2 {
		cfg.MinVisibleImages = 2
	}

	return cfg
}

// WithProjectionFile sets the coordinate system definition file name.
func (b *ConfigBuilder) WithProjectionFile(name string) *ConfigBuilder {
	b.config.ProjectionFile = name
	return b
}

// WithSRS sets the output spatial reference, e.g. "EPSG:32638".
func (b *ConfigBuilder) WithSRS(srs string) *ConfigBuilder {
	b.config.SRS = srs
	return b
}

// WithImagePattern sets the tie-point image pattern.
func (b *ConfigBuilder) WithImagePattern(pattern string) *ConfigBuilder {
	b.config.ImagePattern = pattern
	return b
}

// WithAdjustPattern sets the bundle adjustment image pattern.
func (b *ConfigBuilder) WithAdjustPattern(pattern string) *ConfigBuilder {
	b.config.AdjustPattern = pattern
	return b
}

// WithRPCPatterns sets the capture and reference patterns that pair each
// image with its RPC file.
func (b *ConfigBuilder) WithRPCPatterns(pair, rpc string) *ConfigBuilder {
	b.config.PairPattern = pair
	b.config.RPCPattern = rpc
	return b
}

// WithResolution sets the tie-point working resolution.
// Use -1 for full resolution.
func (b *ConfigBuilder) WithResolution(resolution int) *ConfigBuilder {
	b.config.Resolution = resolution
	return b
}

// WithOrientations sets the initial and adjusted orientation names.
func (b *ConfigBuilder) WithOrientations(initial, adjusted string) *ConfigBuilder {
	b.config.InitialOrientation = initial
	b.config.AdjustedOrientation = adjusted
	return b
}

// WithDegree sets the polynomial correction degree.
func (b *ConfigBuilder) WithDegree(degree int) *ConfigBuilder {
	b.config.Degree = degree
	return b
}

// WithMaltMode sets the correlation mode.
func (b *ConfigBuilder) WithMaltMode(mode string) *ConfigBuilder {
	b.config.MaltMode = mode
	return b
}

// WithCorrelationWindow sets the correlation window half-size.
// Values below 1 will be forced to 1.
func (b *ConfigBuilder) WithCorrelationWindow(size int) *ConfigBuilder {
	b.config.CorrelationWindow = size
	return b
}

// WithRegularization sets the correlation regularization factor.
func (b *ConfigBuilder) WithRegularization(factor float64) *ConfigBuilder {
	b.config.Regularization = factor
	return b
}

// WithMinVisibleImages sets the minimum visible image count per cell.
// Values below 2 will be forced to 2.
func (b *ConfigBuilder) WithMinVisibleImages(count int) *ConfigBuilder {
	b.config.MinVisibleImages = count
	return b
}

// WithShadeMode sets the shaded relief mode.
func (b *ConfigBuilder) WithShadeMode(mode string) *ConfigBuilder {
	b.config.ShadeMode = mode
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config for the given
// input directory.
func (c Config) ToOrchestratorConfig(inputDir string) orchestrator.Config {
	return orchestrator.Config{
		InputDir: inputDir,

		ProjectionFile: c.ProjectionFile,

		ImagePattern:  c.ImagePattern,
		AdjustPattern: c.AdjustPattern,
		PairPattern:   c.PairPattern,
		RPCPattern:    c.RPCPattern,

		Resolution: c.Resolution,

		InitialOrientation:  c.InitialOrientation,
		AdjustedOrientation: c.AdjustedOrientation,
		Degree:              c.Degree,

		MaltMode: c.MaltMode,
		Malt: ports.MaltOptions{
			CorrelationWindow: c.CorrelationWindow,
			Regularization:    c.Regularization,
			MinVisibleImages:  c.MinVisibleImages,
			GenerateOrtho:     true,
			AbsoluteAltitude:  true,
		},
		ShadeMode: c.ShadeMode,

		SRS: c.SRS,
	}
}
