// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/stereopipe/pkg/homol"
	"github.com/user/stereopipe/pkg/inputset"
	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputDir string

	// Discovery
	ProjectionFile string // Projection definition file name (ChSys)

	// Patterns handed to the external suite
	ImagePattern  string // Tie-point extraction (e.g. ".*.TIF")
	AdjustPattern string // Bundle adjustment (e.g. ".*TIF")
	PairPattern   string // RPC pairing capture (e.g. "(.*).TIF")
	RPCPattern    string // RPC reference (e.g. "$1.XML")

	// Tie points
	Resolution int // Working resolution; -1 = full resolution

	// Orientation
	InitialOrientation  string
	AdjustedOrientation string
	Degree              int

	// Surface
	MaltMode  string
	Malt      ports.MaltOptions
	ShadeMode string

	// Georeferencing
	SRS string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ProjectionFile: "WGS84toUTM.xml",

		ImagePattern:  ".*.TIF",
		AdjustPattern: ".*TIF",
		PairPattern:   "(.*).TIF",
		RPCPattern:    "$1.XML",

		Resolution: -1,

		InitialOrientation:  "RPC-d0",
		AdjustedOrientation: "RPC-d0-adj",
		Degree:              0,

		MaltMode: "UrbanMNE",
		Malt: ports.MaltOptions{
			CorrelationWindow: 2,
			Regularization:    0.2,
			MinVisibleImages:  2,
			GenerateOrtho:     true,
			AbsoluteAltitude:  true,
		},
		ShadeMode: "IgnE",

		SRS: "EPSG:32638",
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	tiePointsStage pipeline.Stage[pipeline.TiePointsInput, pipeline.TiePointsResult]
	orientStage    pipeline.Stage[pipeline.OrientInput, pipeline.OrientResult]
	surfaceStage   pipeline.Stage[pipeline.SurfaceInput, pipeline.SurfaceResult]
	orthoStage     pipeline.Stage[pipeline.OrthoInput, pipeline.OrthoResult]
	georefStage    pipeline.Stage[pipeline.GeorefInput, pipeline.GeorefResult]
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	tiePointsStage pipeline.Stage[pipeline.TiePointsInput, pipeline.TiePointsResult],
	orientStage pipeline.Stage[pipeline.OrientInput, pipeline.OrientResult],
	surfaceStage pipeline.Stage[pipeline.SurfaceInput, pipeline.SurfaceResult],
	orthoStage pipeline.Stage[pipeline.OrthoInput, pipeline.OrthoResult],
	georefStage pipeline.Stage[pipeline.GeorefInput, pipeline.GeorefResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		tiePointsStage: tiePointsStage,
		orientStage:    orientStage,
		surfaceStage:   surfaceStage,
		orthoStage:     orthoStage,
		georefStage:    georefStage,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// Run executes the complete pipeline. Discovery happens first so that an
// invalid input set fails the run before any external process is started.
// Steps run strictly in order; the first failure aborts the run.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	start := time.Now()
	result := RunResult{InputDir: config.InputDir}

	o.logger.Info(l10n.T("Starting stereo pipeline"))

	// 1. Discover and validate inputs
	set, err := inputset.Discover(o.fs, config.InputDir, config.ProjectionFile)
	if err != nil {
		o.logger.Error(l10n.F("Input discovery failed: %s", err))
		return result, fmt.Errorf("discover inputs: %w", err)
	}
	result.Images = set.ImageNames()
	o.logger.Info(l10n.F("Found %d candidate images", len(set.Images)))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(set, "", "  "); err == nil {
			o.sink.SaveInputSetJSON(data)
		}
	}

	// 2. Prepare geo output directory
	geoDir := config.InputDir + "/" + pipeline.GeoDir
	if err := o.fs.MkdirAll(geoDir); err != nil {
		return result, fmt.Errorf("create geo directory: %w", err)
	}
	o.logger.Debug("Created geo output directory %s", geoDir)

	names := set.ImageNames()

	// 3. Tie-point extraction
	o.logger.Info(l10n.T("Extracting tie points"))
	tiePoints, err := o.tiePointsStage.Execute(ctx, pipeline.TiePointsInput{
		Dir:          config.InputDir,
		ImagePattern: config.ImagePattern,
		Resolution:   config.Resolution,
		Image1:       names[0],
		Image2:       names[1],
	})
	o.record(&result, tiePoints.Steps)
	if err != nil {
		o.logger.Error(l10n.F("Tie-point extraction failed: %s", err))
		return result, fmt.Errorf("tiepoints stage: %w", err)
	}
	result.TiePointCount = tiePoints.Stats.Count
	result.TiePointStats = tiePoints.Stats
	o.logger.Info(l10n.T("Tie-point extraction completed"))

	// 4. Orientation conversion and bundle adjustment
	o.logger.Info(l10n.T("Running bundle adjustment"))
	orient, err := o.orientStage.Execute(ctx, pipeline.OrientInput{
		Dir:                 config.InputDir,
		ImagePattern:        config.AdjustPattern,
		PairPattern:         config.PairPattern,
		RPCPattern:          config.RPCPattern,
		Projection:          config.ProjectionFile,
		Degree:              config.Degree,
		InitialOrientation:  config.InitialOrientation,
		AdjustedOrientation: config.AdjustedOrientation,
	})
	o.record(&result, orient.Steps)
	if err != nil {
		o.logger.Error(l10n.F("Bundle adjustment failed: %s", err))
		return result, fmt.Errorf("orient stage: %w", err)
	}
	o.logger.Info(l10n.T("Bundle adjustment completed"))

	// 5. DSM correlation and shaded relief
	o.logger.Info(l10n.T("Generating DSM"))
	surface, err := o.surfaceStage.Execute(ctx, pipeline.SurfaceInput{
		Dir:          config.InputDir,
		Mode:         config.MaltMode,
		ImagePattern: config.AdjustPattern,
		Orientation:  orient.Orientation,
		Malt:         config.Malt,
		ShadeMode:    config.ShadeMode,
	})
	o.record(&result, surface.Steps)
	if err != nil {
		o.logger.Error(l10n.F("DSM generation failed: %s", err))
		return result, fmt.Errorf("surface stage: %w", err)
	}
	result.DSMPath = surface.DSMPath
	result.ShadePath = surface.ShadePath

	// 6. Orthophoto mosaicking
	o.logger.Info(l10n.T("Generating orthophoto mosaic"))
	ortho, err := o.orthoStage.Execute(ctx, pipeline.OrthoInput{Dir: config.InputDir})
	o.record(&result, ortho.Steps)
	if err != nil {
		o.logger.Error(l10n.F("Orthophoto generation failed: %s", err))
		return result, fmt.Errorf("ortho stage: %w", err)
	}
	result.OrthoPath = ortho.MosaicPath

	// 7. Georeference the DSM
	o.logger.Info(l10n.T("Georeferencing DSM"))
	georef, err := o.georefStage.Execute(ctx, pipeline.GeorefInput{
		Dir:           config.InputDir,
		DSMPath:       surface.DSMPath,
		WorldFilePath: surface.WorldFilePath,
		GeoXMLPath:    surface.GeoXMLPath,
		OutputPath:    pipeline.GeoDSMFile,
		SRS:           config.SRS,
	})
	o.record(&result, georef.Steps)
	if err != nil {
		o.logger.Error(l10n.F("Georeferencing failed: %s", err))
		return result, fmt.Errorf("georef stage: %w", err)
	}
	result.GeoDSMPath = georef.OutputPath
	result.RasterWidth = georef.Width
	result.RasterHeight = georef.Height
	o.logger.Info(l10n.F("Georeferenced DSM saved to %s", georef.OutputPath))

	result.TotalDurationMs = time.Since(start).Milliseconds()
	o.logger.Info(l10n.T("Pipeline completed successfully"))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			o.sink.SaveRunJSON(data)
		}
	}

	return result, nil
}

// record appends the stage's step outputs to the run result and saves their
// console output to the sink.
func (o *Orchestrator) record(result *RunResult, steps []pipeline.StepOutput) {
	result.Steps = append(result.Steps, steps...)
	if !o.sink.Enabled() {
		return
	}
	for _, step := range steps {
		if step.Console != "" {
			o.sink.SaveStepLog(step.Name, step.Console)
		}
	}
}

// RunResult contains the results of a pipeline run.
type RunResult struct {
	InputDir string   `json:"input_dir"`
	Images   []string `json:"images"`

	// Tie points
	TiePointCount int         `json:"tie_point_count"`
	TiePointStats homol.Stats `json:"tie_point_stats"`

	// Artifact paths, relative to the input directory
	DSMPath    string `json:"dsm_path,omitempty"`
	ShadePath  string `json:"shade_path,omitempty"`
	OrthoPath  string `json:"ortho_path,omitempty"`
	GeoDSMPath string `json:"geo_dsm_path,omitempty"`

	// Georeferenced raster dimensions in pixels
	RasterWidth  int `json:"raster_width,omitempty"`
	RasterHeight int `json:"raster_height,omitempty"`

	// Per-step command invocations in execution order
	Steps []pipeline.StepOutput `json:"steps"`

	TotalDurationMs int64 `json:"total_duration_ms"`
}
