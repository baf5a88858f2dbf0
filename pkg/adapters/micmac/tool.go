// Package micmac wraps the MicMac photogrammetry suite (the mm3d executable).
// Each pipeline step corresponds to one mm3d subcommand; this package builds
// the argument lists and runs the subcommands through a CommandRunner.
package micmac

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/user/stereopipe/pkg/ports"
)

// exitOnBreakpoint tells mm3d to terminate instead of dropping into its
// interactive prompt when a processing breakpoint is hit.
const exitOnBreakpoint = "@ExitOnBrkp"

// Find searches for the mm3d executable.
// Priority: 1) customPath, 2) MM3D_PATH env, 3) PATH, 4) common locations.
func Find(runner ports.CommandRunner, customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrToolNotFound, customPath)
	}

	if envPath := os.Getenv("MM3D_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: MM3D_PATH %s not found", ErrToolNotFound, envPath)
	}

	execName := "mm3d"
	if runtime.GOOS == "windows" {
		execName = "mm3d.exe"
	}

	path, err := runner.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/mm3d",
			"/usr/local/bin/mm3d",
			"/opt/micmac/bin/mm3d",
		}
	} else {
		commonPaths = []string{
			"/usr/bin/mm3d",
			"/usr/local/bin/mm3d",
			"/opt/micmac/bin/mm3d",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrToolNotFound
}

// Tool invokes mm3d subcommands in a working directory.
type Tool struct {
	path   string
	runner ports.CommandRunner
}

// New locates mm3d and returns a Tool bound to the given runner.
// customPath overrides the search when non-empty.
func New(runner ports.CommandRunner, customPath string) (*Tool, error) {
	path, err := Find(runner, customPath)
	if err != nil {
		return nil, err
	}
	return &Tool{path: path, runner: runner}, nil
}

// Path returns the resolved mm3d executable path.
func (t *Tool) Path() string {
	return t.path
}

// run executes one mm3d subcommand in dir.
func (t *Tool) run(ctx context.Context, dir string, args ...string) (ports.CommandResult, error) {
	return t.runner.Run(ctx, ports.Command{
		Path: t.path,
		Args: args,
		Dir:  dir,
	})
}

// Tapioca extracts tie points for all images matching pattern.
// resolution is the working resolution in pixels; -1 means full resolution.
func (t *Tool) Tapioca(ctx context.Context, dir, pattern string, resolution int) (ports.CommandResult, error) {
	return t.run(ctx, dir,
		"Tapioca", "All", pattern, fmt.Sprintf("%d", resolution),
		"ExpTxt=1", exitOnBreakpoint)
}

// Convert2GenBundle converts RPC metadata into MicMac's generic bundle
// orientation. pairPattern captures the image base name (e.g. "(.*).TIF") and
// rpcPattern references it (e.g. "$1.XML"). chSys names the projection
// definition file; degree is the polynomial correction degree.
func (t *Tool) Convert2GenBundle(ctx context.Context, dir, pairPattern, rpcPattern, orientation, chSys string, degree int) (ports.CommandResult, error) {
	return t.run(ctx, dir,
		"Convert2GenBundle", pairPattern, rpcPattern, orientation,
		"ChSys="+chSys, fmt.Sprintf("Degre=%d", degree), exitOnBreakpoint)
}

// Campari runs bundle adjustment, refining orientIn into orientOut.
func (t *Tool) Campari(ctx context.Context, dir, pattern, orientIn, orientOut string) (ports.CommandResult, error) {
	return t.run(ctx, dir,
		"Campari", pattern, orientIn, orientOut, "ExpTxt=1", exitOnBreakpoint)
}

// Malt correlates the images into a DSM using the given mode (e.g. UrbanMNE).
func (t *Tool) Malt(ctx context.Context, dir, mode, pattern, orientation string, opts ports.MaltOptions) (ports.CommandResult, error) {
	args := []string{
		"Malt", mode, pattern, orientation,
		fmt.Sprintf("SzW=%d", opts.CorrelationWindow),
		fmt.Sprintf("Regul=%g", opts.Regularization),
		fmt.Sprintf("DoOrtho=%d", boolToInt(opts.GenerateOrtho)),
		fmt.Sprintf("NbVI=%d", opts.MinVisibleImages),
		fmt.Sprintf("EZA=%d", boolToInt(opts.AbsoluteAltitude)),
		exitOnBreakpoint,
	}
	return t.run(ctx, dir, args...)
}

// GrShade renders a shaded relief of the DSM raster, restricted to mask.
func (t *Tool) GrShade(ctx context.Context, dir, dsm, mode, mask string) (ports.CommandResult, error) {
	return t.run(ctx, dir,
		"GrShade", dsm, "ModeOmbre="+mode, "Mask="+mask, exitOnBreakpoint)
}

// Tawny mosaics the per-image orthoimages in orthoDir into a single orthophoto.
func (t *Tool) Tawny(ctx context.Context, dir, orthoDir string) (ports.CommandResult, error) {
	return t.run(ctx, dir, "Tawny", orthoDir, exitOnBreakpoint)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure Tool implements ports.StereoTool
var _ ports.StereoTool = (*Tool)(nil)
