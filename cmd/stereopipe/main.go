// Package main provides the CLI entry point for stereopipe.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/stereopipe/pkg/adapters/execrunner"
	"github.com/user/stereopipe/pkg/adapters/filesink"
	"github.com/user/stereopipe/pkg/adapters/gdal"
	"github.com/user/stereopipe/pkg/adapters/logger"
	"github.com/user/stereopipe/pkg/adapters/micmac"
	"github.com/user/stereopipe/pkg/adapters/nullsink"
	"github.com/user/stereopipe/pkg/adapters/osfilesystem"
	"github.com/user/stereopipe/pkg/adapters/plotview"
	"github.com/user/stereopipe/pkg/config"
	"github.com/user/stereopipe/pkg/orchestrator"
	"github.com/user/stereopipe/pkg/ports"
	"github.com/user/stereopipe/pkg/stages/georef"
	"github.com/user/stereopipe/pkg/stages/orient"
	"github.com/user/stereopipe/pkg/stages/ortho"
	"github.com/user/stereopipe/pkg/stages/surface"
	"github.com/user/stereopipe/pkg/stages/tiepoints"
	"github.com/user/stereopipe/pkg/stereopipe"
	"github.com/user/stereopipe/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run the stereo reconstruction pipeline on an image directory."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// RunCmd defines the run subcommand.
type RunCmd struct {
	// Required arguments
	InputDir string `arg:"" help:"Directory containing the stereo pair, RPC files and projection definition."`

	// Preset
	Preset string `short:"p" default:"spot" enum:"spot,pleiades" help:"Sensor preset (spot or pleiades)."`

	// Config file
	Config string `short:"c" help:"YAML configuration file (overrides preset)."`

	// Projection options
	EPSG       *string `help:"Output spatial reference (e.g., EPSG:32638)."`
	Projection *string `help:"Coordinate system definition file in the input directory."`

	// Processing options
	Resolution        *int     `help:"Tie-point working resolution in pixels (-1 = full)."`
	Degree            *int     `help:"Polynomial correction degree for bundle adjustment."`
	CorrelationWindow *int     `help:"Correlation window half-size."`
	Regularization    *float64 `help:"Correlation regularization factor."`

	// Tool locations
	MM3DPath string `help:"Path to the mm3d executable (falls back to MM3D_PATH env, then system default)."`
	GDALPath string `help:"Path to the gdal_translate executable (falls back to GDAL_TRANSLATE_PATH env, then system default)."`

	// Output options
	Summary string `short:"s" help:"Output execution summary to file (Markdown format)."`

	// Debug options
	Plot    bool   `short:"d" negatable:"" help:"Enable diagnostic output (plots, previews, step logs)."`
	PlotDir string `default:"./debug" help:"Directory for diagnostic output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Verbose  bool   `short:"v" help:"Shortcut for --log-level=debug."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("stereopipe"),
		kong.Description("Build a DSM, orthophoto and shaded relief from a stereo satellite pair."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the run command.
func (cmd *RunCmd) Run() error {
	orchConfig, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		level := ports.ParseLogLevel(cmd.LogLevel)
		if cmd.Verbose {
			level = ports.LevelDebug
		}
		log = logger.NewConsole(level)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	runner := execrunner.New()
	plotter := plotview.New()

	tool, err := micmac.New(runner, cmd.MM3DPath)
	if err != nil {
		return err
	}
	translator, err := gdal.New(runner, cmd.GDALPath)
	if err != nil {
		return err
	}

	// Create debug sink
	var sink ports.DebugSink
	if cmd.Plot {
		if err := fs.MkdirAll(cmd.PlotDir); err != nil {
			return fmt.Errorf("create plot directory: %w", err)
		}
		sink = filesink.New(cmd.PlotDir, fs)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	tiePointsStage := tiepoints.New(tool, fs, plotter, sink, log)
	orientStage := orient.New(tool, fs, log)
	surfaceStage := surface.New(tool, fs, plotter, sink, log)
	orthoStage := ortho.New(tool, fs, plotter, sink, log)
	georefStage := georef.New(translator, fs, log)

	// Create orchestrator
	orch := orchestrator.New(
		tiePointsStage,
		orientStage,
		surfaceStage,
		orthoStage,
		georefStage,
		fs,
		sink,
		log,
	)

	log.Info(l10n.F("Processing %s (%s preset)...", cmd.InputDir, cmd.Preset))

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Georeferenced DSM saved to %s", result.GeoDSMPath))

	if cmd.Summary != "" {
		if err := cmd.writeSummary(result, orchConfig); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cmd.Summary))
		}
	}

	return nil
}

// buildConfig creates an orchestrator.Config from preset, config file and
// CLI overrides.
func (cmd *RunCmd) buildConfig() (orchestrator.Config, error) {
	var orchConfig orchestrator.Config

	if cmd.Config != "" {
		fileConfig, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return orchConfig, err
		}
		orchConfig = fileConfig.ToOrchestratorConfig(cmd.InputDir)
	} else {
		builder := stereopipe.NewPresetConfigBuilder(stereopipe.SensorPreset(cmd.Preset))
		orchConfig = builder.Build().ToOrchestratorConfig(cmd.InputDir)
	}

	// Apply CLI overrides
	if cmd.EPSG != nil {
		orchConfig.SRS = *cmd.EPSG
	}
	if cmd.Projection != nil {
		orchConfig.ProjectionFile = *cmd.Projection
	}
	if cmd.Resolution != nil {
		orchConfig.Resolution = *cmd.Resolution
	}
	if cmd.Degree != nil {
		orchConfig.Degree = *cmd.Degree
	}
	if cmd.CorrelationWindow != nil {
		orchConfig.Malt.CorrelationWindow = *cmd.CorrelationWindow
	}
	if cmd.Regularization != nil {
		orchConfig.Malt.Regularization = *cmd.Regularization
	}

	return orchConfig, nil
}

// writeSummary builds a Markdown summary of the run and writes it to the
// path given by --summary.
func (cmd *RunCmd) writeSummary(result orchestrator.RunResult, cfg orchestrator.Config) error {
	steps := make([]summarizer.StepInfo, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, summarizer.StepInfo{
			Name:       step.Name,
			Command:    step.Command,
			DurationMs: step.DurationMs,
		})
	}

	summary := summarizer.NewBuilder().
		WithInput(summarizer.InputInfo{
			Dir:        result.InputDir,
			Images:     result.Images,
			Projection: cfg.ProjectionFile,
			SRS:        cfg.SRS,
		}).
		WithTiePoints(summarizer.TiePointInfo{
			Count:    result.TiePointCount,
			MeanDX:   result.TiePointStats.MeanDX,
			MeanDY:   result.TiePointStats.MeanDY,
			StdDevDX: result.TiePointStats.StdDevDX,
			StdDevDY: result.TiePointStats.StdDevDY,
		}).
		WithSteps(steps).
		WithArtifacts(summarizer.ArtifactInfo{
			DSM:          result.DSMPath,
			Shade:        result.ShadePath,
			Ortho:        result.OrthoPath,
			GeoDSM:       result.GeoDSMPath,
			RasterWidth:  result.RasterWidth,
			RasterHeight: result.RasterHeight,
		}).
		WithTotalDuration(result.TotalDurationMs).
		Build()

	writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter())
	return writer.Write(cmd.Summary, summary)
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("stereopipe version %s", version))
	return nil
}
