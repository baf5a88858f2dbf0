// Package gdal wraps the gdal_translate utility used to georeference rasters.
package gdal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/user/stereopipe/pkg/ports"
)

// ErrToolNotFound is returned when the gdal_translate executable cannot be located.
var ErrToolNotFound = errors.New("gdal: gdal_translate not found in PATH")

// Find searches for the gdal_translate executable.
// Priority: 1) customPath, 2) GDAL_TRANSLATE_PATH env, 3) PATH, 4) common locations.
func Find(runner ports.CommandRunner, customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrToolNotFound, customPath)
	}

	if envPath := os.Getenv("GDAL_TRANSLATE_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: GDAL_TRANSLATE_PATH %s not found", ErrToolNotFound, envPath)
	}

	execName := "gdal_translate"
	if runtime.GOOS == "windows" {
		execName = "gdal_translate.exe"
	}

	path, err := runner.LookPath(execName)
	if err == nil {
		return path, nil
	}

	commonPaths := []string{
		"/usr/bin/gdal_translate",
		"/usr/local/bin/gdal_translate",
		"/opt/homebrew/bin/gdal_translate",
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrToolNotFound
}

// Translator invokes gdal_translate.
type Translator struct {
	path   string
	runner ports.CommandRunner
}

// New locates gdal_translate and returns a Translator bound to the runner.
func New(runner ports.CommandRunner, customPath string) (*Translator, error) {
	path, err := Find(runner, customPath)
	if err != nil {
		return nil, err
	}
	return &Translator{path: path, runner: runner}, nil
}

// Path returns the resolved gdal_translate executable path.
func (t *Translator) Path() string {
	return t.path
}

// Translate writes a GeoTIFF copy of input with the given SRS (e.g.
// "EPSG:32638") and corner coordinates assigned. Existing output files are
// overwritten.
func (t *Translator) Translate(ctx context.Context, dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
	args := []string{
		"-of", "GTiff",
		"-a_srs", srs,
		"-a_ullr",
		formatCoord(b.UpperLeftX), formatCoord(b.UpperLeftY),
		formatCoord(b.LowerRightX), formatCoord(b.LowerRightY),
		input, output,
	}
	return t.runner.Run(ctx, ports.Command{
		Path: t.path,
		Args: args,
		Dir:  dir,
	})
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Ensure Translator implements ports.Georeferencer
var _ ports.Georeferencer = (*Translator)(nil)
