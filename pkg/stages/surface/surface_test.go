package surface

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stereopipe/pkg/adapters/logger"
	"github.com/user/stereopipe/pkg/mocks"
	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

func newInput() pipeline.SurfaceInput {
	return pipeline.SurfaceInput{
		Dir:          "/data",
		Mode:         "UrbanMNE",
		ImagePattern: ".*TIF",
		Orientation:  "RPC-d0-adj",
		Malt: ports.MaltOptions{
			CorrelationWindow: 2,
			Regularization:    0.2,
			MinVisibleImages:  2,
			GenerateOrtho:     true,
			AbsoluteAltitude:  true,
		},
		ShadeMode: "IgnE",
	}
}

func addMaltOutputs(fs *mocks.FileSystem) {
	fs.AddFile("/data/"+pipeline.DSMFile, []byte("tif"))
	fs.AddFile("/data/"+pipeline.DSMWorldFile, []byte("tfw"))
	fs.AddFile("/data/"+pipeline.DSMGeoXMLFile, []byte("xml"))
}

func TestExecute(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		switch call.Name {
		case "Malt":
			addMaltOutputs(fs)
		case "GrShade":
			fs.AddFile("/data/"+pipeline.ShadeFile, []byte("tif"))
		}
		return ports.CommandResult{}, nil
	}

	stage := New(tool, fs, mocks.NewPlotter(), mocks.NewDebugSink(false), logger.NewNoop())
	result, err := stage.Execute(context.Background(), newInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.DSMPath != pipeline.DSMFile {
		t.Errorf("unexpected DSM path %q", result.DSMPath)
	}
	if result.WorldFilePath != pipeline.DSMWorldFile {
		t.Errorf("unexpected world file path %q", result.WorldFilePath)
	}
	if result.ShadePath != pipeline.ShadeFile {
		t.Errorf("unexpected shade path %q", result.ShadePath)
	}
	if len(result.Steps) != 2 || result.Steps[0].Name != "malt" || result.Steps[1].Name != "grshade" {
		t.Errorf("unexpected steps %+v", result.Steps)
	}
}

func TestExecute_MaltFails(t *testing.T) {
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		return ports.CommandResult{ExitCode: 1}, errors.New("exit 1")
	}

	stage := New(tool, mocks.NewFileSystem(), mocks.NewPlotter(), mocks.NewDebugSink(false), logger.NewNoop())
	_, err := stage.Execute(context.Background(), newInput())
	if err == nil {
		t.Fatal("expected error when Malt fails")
	}
	if calls := tool.Calls(); len(calls) != 1 {
		t.Errorf("expected no GrShade after Malt failure, got %+v", calls)
	}
}

func TestExecute_MissingWorldFile(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		// DSM raster only, sidecars missing.
		fs.AddFile("/data/"+pipeline.DSMFile, []byte("tif"))
		return ports.CommandResult{}, nil
	}

	stage := New(tool, fs, mocks.NewPlotter(), mocks.NewDebugSink(false), logger.NewNoop())
	_, err := stage.Execute(context.Background(), newInput())
	if !errors.Is(err, pipeline.ErrMissingOutput) {
		t.Fatalf("expected ErrMissingOutput, got %v", err)
	}
}

func TestExecute_MissingShade(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		if call.Name == "Malt" {
			addMaltOutputs(fs)
		}
		return ports.CommandResult{}, nil
	}

	stage := New(tool, fs, mocks.NewPlotter(), mocks.NewDebugSink(false), logger.NewNoop())
	_, err := stage.Execute(context.Background(), newInput())
	if !errors.Is(err, pipeline.ErrMissingOutput) {
		t.Fatalf("expected ErrMissingOutput, got %v", err)
	}
}

func TestExecute_ShadePreview(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		switch call.Name {
		case "Malt":
			addMaltOutputs(fs)
		case "GrShade":
			fs.AddFile("/data/"+pipeline.ShadeFile, []byte("tif"))
		}
		return ports.CommandResult{}, nil
	}

	sink := mocks.NewDebugSink(true)
	stage := New(tool, fs, mocks.NewPlotter(), sink, logger.NewNoop())
	_, err := stage.Execute(context.Background(), newInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sink.Previews["shaded_relief"]; !ok {
		t.Error("expected shaded relief preview saved")
	}
}
