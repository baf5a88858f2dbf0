// Package surface implements the DSM correlation and shaded relief stage.
package surface

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

// Stage correlates the adjusted images into a DSM with Malt and renders a
// shaded relief of it with GrShade.
type Stage struct {
	tool    ports.StereoTool
	fs      ports.FileSystem
	plotter ports.Plotter
	sink    ports.DebugSink
	logger  ports.Logger
}

// New creates a new surface stage.
func New(tool ports.StereoTool, fs ports.FileSystem, plotter ports.Plotter, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		tool:    tool,
		fs:      fs,
		plotter: plotter,
		sink:    sink,
		logger:  logger.WithComponent("surface"),
	}
}

// Execute runs Malt and GrShade, verifying the DSM raster and its
// georeferencing sidecars before the shaded relief is attempted.
func (s *Stage) Execute(ctx context.Context, input pipeline.SurfaceInput) (pipeline.SurfaceResult, error) {
	result := pipeline.SurfaceResult{}

	s.logger.Debug("Generating DSM")
	res, err := s.tool.Malt(ctx, input.Dir, input.Mode, input.ImagePattern, input.Orientation, input.Malt)
	result.Steps = append(result.Steps, stepOutput("malt", res))
	if err != nil {
		return result, fmt.Errorf("malt: %w", err)
	}

	// The world file and XML are needed later for georeferencing; a DSM
	// without them is unusable, so their absence fails the stage here.
	for _, rel := range []string{pipeline.DSMFile, pipeline.DSMWorldFile, pipeline.DSMGeoXMLFile} {
		if err := s.require(input.Dir, rel); err != nil {
			return result, err
		}
	}
	result.DSMPath = pipeline.DSMFile
	result.WorldFilePath = pipeline.DSMWorldFile
	result.GeoXMLPath = pipeline.DSMGeoXMLFile
	s.logger.Info("DSM generated: %s", pipeline.DSMFile)

	s.logger.Debug("Generating shaded relief")
	res, err = s.tool.GrShade(ctx, input.Dir, pipeline.DSMFile, input.ShadeMode, pipeline.MaskFile)
	result.Steps = append(result.Steps, stepOutput("grshade", res))
	if err != nil {
		return result, fmt.Errorf("grshade: %w", err)
	}
	if err := s.require(input.Dir, pipeline.ShadeFile); err != nil {
		return result, err
	}
	result.ShadePath = pipeline.ShadeFile
	s.logger.Info("Shaded relief generated: %s", pipeline.ShadeFile)

	if s.sink.Enabled() {
		s.savePreview(input.Dir, pipeline.ShadeFile)
	}

	return result, nil
}

// savePreview renders the shaded relief preview. Failures are warnings.
func (s *Stage) savePreview(dir, rel string) {
	s.logger.Debug("Rendering shaded relief preview")
	data, err := s.fs.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		s.logger.Warn("Preview skipped, %s not readable", rel)
		return
	}
	img, err := s.plotter.DecodeRaster(data)
	if err != nil {
		s.logger.Warn("Preview skipped, %s not readable", rel)
		return
	}
	png, err := s.plotter.Preview([]image.Image{img}, []string{"Shaded Relief"})
	if err != nil {
		return
	}
	s.sink.SavePreview("shaded_relief", png)
}

func (s *Stage) require(dir, rel string) error {
	path := filepath.Join(dir, rel)
	exists, err := s.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", pipeline.ErrMissingOutput, path)
	}
	return nil
}

func stepOutput(name string, res ports.CommandResult) pipeline.StepOutput {
	return pipeline.StepOutput{
		Name:       name,
		Command:    res.Command.String(),
		DurationMs: res.Duration.Milliseconds(),
		Console:    res.Stdout,
	}
}
