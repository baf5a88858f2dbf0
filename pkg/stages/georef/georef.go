// Package georef implements the DSM georeferencing stage.
//
// The suite writes the DSM with pixel coordinates only; the geographic
// extent is reconstructed from the TFW world file and the raster dimensions,
// then stamped onto a copy of the raster.
package georef

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

// Stage georeferences the DSM raster.
type Stage struct {
	geo    ports.Georeferencer
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new georeferencing stage.
func New(geo ports.Georeferencer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		geo:    geo,
		fs:     fs,
		logger: logger.WithComponent("georef"),
	}
}

// Execute parses the world file and raster dimensions, computes the extent
// and writes the georeferenced copy.
func (s *Stage) Execute(ctx context.Context, input pipeline.GeorefInput) (pipeline.GeorefResult, error) {
	result := pipeline.GeorefResult{}

	tfwData, err := s.fs.ReadFile(filepath.Join(input.Dir, input.WorldFilePath))
	if err != nil {
		return result, fmt.Errorf("read world file: %w", err)
	}
	wf, err := ParseWorldFile(tfwData)
	if err != nil {
		return result, err
	}

	xmlData, err := s.fs.ReadFile(filepath.Join(input.Dir, input.GeoXMLPath))
	if err != nil {
		return result, fmt.Errorf("read georeferencing XML: %w", err)
	}
	width, height, err := ParseRasterSize(xmlData)
	if err != nil {
		return result, err
	}

	bounds := Bounds(wf, width, height)
	result.Bounds = bounds
	result.Width = width
	result.Height = height
	s.logger.Debug("Raster %dx%d, extent %g %g %g %g", width, height,
		bounds.UpperLeftX, bounds.UpperLeftY, bounds.LowerRightX, bounds.LowerRightY)

	res, err := s.geo.Translate(ctx, input.Dir, input.DSMPath, input.OutputPath, input.SRS, bounds)
	result.Steps = append(result.Steps, pipeline.StepOutput{
		Name:       "gdal_translate",
		Command:    res.Command.String(),
		DurationMs: res.Duration.Milliseconds(),
		Console:    res.Stdout,
	})
	if err != nil {
		return result, fmt.Errorf("gdal_translate: %w", err)
	}

	path := filepath.Join(input.Dir, input.OutputPath)
	exists, err := s.fs.Exists(path)
	if err != nil {
		return result, fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		return result, fmt.Errorf("%w: %s", pipeline.ErrMissingOutput, path)
	}
	result.OutputPath = input.OutputPath

	return result, nil
}

// Bounds derives the geographic extent from the world file parameters and
// the raster dimensions. PixelSizeY is negative for north-up rasters, so the
// lower-right Y falls below the upper-left Y.
func Bounds(wf WorldFile, width, height int) ports.GeoBounds {
	return ports.GeoBounds{
		UpperLeftX:  wf.UpperLeftX,
		UpperLeftY:  wf.UpperLeftY,
		LowerRightX: wf.UpperLeftX + float64(width)*wf.PixelSizeX,
		LowerRightY: wf.UpperLeftY + float64(height)*wf.PixelSizeY,
	}
}
