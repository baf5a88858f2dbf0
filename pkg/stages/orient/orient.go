// Package orient implements the orientation conversion and bundle
// adjustment stage.
package orient

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

// Stage converts RPC metadata to a generic bundle orientation and refines it
// with bundle adjustment.
type Stage struct {
	tool   ports.StereoTool
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new orientation stage.
func New(tool ports.StereoTool, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		tool:   tool,
		fs:     fs,
		logger: logger.WithComponent("orient"),
	}
}

// Execute runs Convert2GenBundle followed by Campari, verifying the
// orientation directory each writes.
func (s *Stage) Execute(ctx context.Context, input pipeline.OrientInput) (pipeline.OrientResult, error) {
	result := pipeline.OrientResult{}

	s.logger.Debug("Converting RPC orientations")
	res, err := s.tool.Convert2GenBundle(ctx, input.Dir,
		input.PairPattern, input.RPCPattern, input.InitialOrientation,
		input.Projection, input.Degree)
	result.Steps = append(result.Steps, stepOutput("convert2genbundle", res))
	if err != nil {
		return result, fmt.Errorf("convert2genbundle: %w", err)
	}
	if err := s.requireDir(input.Dir, input.InitialOrientation); err != nil {
		return result, err
	}

	s.logger.Debug("Running bundle adjustment")
	res, err = s.tool.Campari(ctx, input.Dir,
		input.ImagePattern, input.InitialOrientation, input.AdjustedOrientation)
	result.Steps = append(result.Steps, stepOutput("campari", res))
	if err != nil {
		return result, fmt.Errorf("campari: %w", err)
	}
	if err := s.requireDir(input.Dir, input.AdjustedOrientation); err != nil {
		return result, err
	}

	result.Orientation = input.AdjustedOrientation
	return result, nil
}

// requireDir checks that the Ori-<orientation> directory exists.
func (s *Stage) requireDir(dir, orientation string) error {
	path := filepath.Join(dir, pipeline.OriDir(orientation))
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
