package ortho

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stereopipe/pkg/adapters/logger"
	"github.com/user/stereopipe/pkg/mocks"
	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

func TestExecute(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		fs.AddFile("/data/"+pipeline.OrthoMosaicFile, []byte("tif"))
		return ports.CommandResult{}, nil
	}

	stage := New(tool, fs, mocks.NewPlotter(), mocks.NewDebugSink(false), logger.NewNoop())
	result, err := stage.Execute(context.Background(), pipeline.OrthoInput{Dir: "/data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MosaicPath != pipeline.OrthoMosaicFile {
		t.Errorf("unexpected mosaic path %q", result.MosaicPath)
	}
	if len(result.Steps) != 1 || result.Steps[0].Name != "tawny" {
		t.Errorf("unexpected steps %+v", result.Steps)
	}

	calls := tool.Calls()
	if len(calls) != 1 || calls[0].Name != "Tawny" {
		t.Fatalf("unexpected tool calls %+v", calls)
	}
	// Tawny takes the ortho directory with a trailing slash.
	if calls[0].Args[0] != "Ortho-MEC-Malt/" {
		t.Errorf("unexpected ortho dir argument %q", calls[0].Args[0])
	}
}

func TestExecute_TawnyFails(t *testing.T) {
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		return ports.CommandResult{ExitCode: 1}, errors.New("exit 1")
	}

	stage := New(tool, mocks.NewFileSystem(), mocks.NewPlotter(), mocks.NewDebugSink(false), logger.NewNoop())
	_, err := stage.Execute(context.Background(), pipeline.OrthoInput{Dir: "/data"})
	if err == nil {
		t.Fatal("expected error when Tawny fails")
	}
}

func TestExecute_MissingMosaic(t *testing.T) {
	stage := New(mocks.NewStereoTool(), mocks.NewFileSystem(), mocks.NewPlotter(),
		mocks.NewDebugSink(false), logger.NewNoop())

	_, err := stage.Execute(context.Background(), pipeline.OrthoInput{Dir: "/data"})
	if !errors.Is(err, pipeline.ErrMissingOutput) {
		t.Fatalf("expected ErrMissingOutput, got %v", err)
	}
}

func TestExecute_Preview(t *testing.T) {
	fs := mocks.NewFileSystem()
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		fs.AddFile("/data/"+pipeline.OrthoMosaicFile, []byte("tif"))
		return ports.CommandResult{}, nil
	}

	sink := mocks.NewDebugSink(true)
	stage := New(tool, fs, mocks.NewPlotter(), sink, logger.NewNoop())
	_, err := stage.Execute(context.Background(), pipeline.OrthoInput{Dir: "/data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sink.Previews["orthophoto"]; !ok {
		t.Error("expected orthophoto preview saved")
	}
}
