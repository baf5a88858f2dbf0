// Package config loads pipeline configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/stereopipe/pkg/orchestrator"
	"github.com/user/stereopipe/pkg/ports"
)

// Config is the YAML representation of the pipeline configuration.
// Zero values fall back to the defaults from Defaults().
type Config struct {
	Projection string `yaml:"projection"` // Projection definition file name
	EPSG       string `yaml:"epsg"`       // Output SRS, e.g. "EPSG:32638"

	Patterns PatternsConfig `yaml:"patterns"`

	TiePoints TiePointsConfig `yaml:"tie_points"`
	Orient    OrientConfig    `yaml:"orientation"`
	Surface   SurfaceConfig   `yaml:"surface"`
}

// PatternsConfig holds the file matching patterns handed to the suite.
type PatternsConfig struct {
	Image  string `yaml:"image"`  // Tie-point image pattern
	Adjust string `yaml:"adjust"` // Adjustment image pattern
	Pair   string `yaml:"pair"`   // RPC pairing capture pattern
	RPC    string `yaml:"rpc"`    // RPC reference pattern
}

// TiePointsConfig holds tie-point extraction settings.
type TiePointsConfig struct {
	Resolution int `yaml:"resolution"` // -1 = full resolution
}

// OrientConfig holds orientation and bundle adjustment settings.
type OrientConfig struct {
	Initial  string `yaml:"initial"`  // Initial orientation name
	Adjusted string `yaml:"adjusted"` // Adjusted orientation name
	Degree   int    `yaml:"degree"`   // Polynomial correction degree
}

// SurfaceConfig holds DSM correlation and shading settings.
type SurfaceConfig struct {
	Mode              string  `yaml:"mode"`               // Correlation mode
	CorrelationWindow int     `yaml:"correlation_window"` // SzW
	Regularization    float64 `yaml:"regularization"`     // Regul
	MinVisibleImages  int     `yaml:"min_visible_images"` // NbVI
	ShadeMode         string  `yaml:"shade_mode"`         // Shading mode
}

// Defaults returns a Config matching DefaultConfig of the orchestrator.
func Defaults() Config {
	oc := orchestrator.DefaultConfig()
	return Config{
		Projection: oc.ProjectionFile,
		EPSG:       oc.SRS,
		Patterns: PatternsConfig{
			Image:  oc.ImagePattern,
			Adjust: oc.AdjustPattern,
			Pair:   oc.PairPattern,
			RPC:    oc.RPCPattern,
		},
		TiePoints: TiePointsConfig{
			Resolution: oc.Resolution,
		},
		Orient: OrientConfig{
			Initial:  oc.InitialOrientation,
			Adjusted: oc.AdjustedOrientation,
			Degree:   oc.Degree,
		},
		Surface: SurfaceConfig{
			Mode:              oc.MaltMode,
			CorrelationWindow: oc.Malt.CorrelationWindow,
			Regularization:    oc.Malt.Regularization,
			MinVisibleImages:  oc.Malt.MinVisibleImages,
			ShadeMode:         oc.ShadeMode,
		},
	}
}

// LoadFromFile reads a YAML config file and merges it over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// ToOrchestratorConfig converts the file config to an orchestrator.Config.
func (c Config) ToOrchestratorConfig(inputDir string) orchestrator.Config {
	oc := orchestrator.DefaultConfig()
	oc.InputDir = inputDir

	if c.Projection != "" {
		oc.ProjectionFile = c.Projection
	}
	if c.EPSG != "" {
		oc.SRS = c.EPSG
	}
	if c.Patterns.Image != "" {
		oc.ImagePattern = c.Patterns.Image
	}
	if c.Patterns.Adjust != "" {
		oc.AdjustPattern = c.Patterns.Adjust
	}
	if c.Patterns.Pair != "" {
		oc.PairPattern = c.Patterns.Pair
	}
	if c.Patterns.RPC != "" {
		oc.RPCPattern = c.Patterns.RPC
	}
	if c.TiePoints.Resolution != 0 {
		oc.Resolution = c.TiePoints.Resolution
	}
	if c.Orient.Initial != "" {
		oc.InitialOrientation = c.Orient.Initial
	}
	if c.Orient.Adjusted != "" {
		oc.AdjustedOrientation = c.Orient.Adjusted
	}
	oc.Degree = c.Orient.Degree
	if c.Surface.Mode != "" {
		oc.MaltMode = c.Surface.Mode
	}
	if c.Surface.ShadeMode != "" {
		oc.ShadeMode = c.Surface.ShadeMode
	}
	oc.Malt = ports.MaltOptions{
		CorrelationWindow: c.Surface.CorrelationWindow,
		Regularization:    c.Surface.Regularization,
		MinVisibleImages:  c.Surface.MinVisibleImages,
		GenerateOrtho:     true,
		AbsoluteAltitude:  true,
	}
	if oc.Malt.CorrelationWindow == 0 {
		oc.Malt.CorrelationWindow = 2
	}
	if oc.Malt.Regularization == 0 {
		oc.Malt.Regularization = 0.2
	}
	if oc.Malt.MinVisibleImages == 0 {
		oc.Malt.MinVisibleImages = 2
	}
	return oc
}
