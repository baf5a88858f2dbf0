// Package integration contains integration tests for the stereo pipeline.
// The external suite is replaced by a scripted tool that creates the artifact
// files a real run would leave behind; everything else is the real wiring.
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/user/stereopipe/pkg/adapters/logger"
	"github.com/user/stereopipe/pkg/homol"
	"github.com/user/stereopipe/pkg/mocks"
	"github.com/user/stereopipe/pkg/orchestrator"
	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
	"github.com/user/stereopipe/pkg/stages/georef"
	"github.com/user/stereopipe/pkg/stages/orient"
	"github.com/user/stereopipe/pkg/stages/ortho"
	"github.com/user/stereopipe/pkg/stages/surface"
	"github.com/user/stereopipe/pkg/stages/tiepoints"
)

const inputDir = "/data"

// newInputFS populates a mock filesystem with a valid stereo input set.
func newInputFS() *mocks.FileSystem {
	fs := mocks.NewFileSystem()
	fs.AddDir(inputDir)
	fs.AddFile(inputDir+"/IMG_A.TIF", []byte("tif"))
	fs.AddFile(inputDir+"/IMG_B.TIF", []byte("tif"))
	fs.AddFile(inputDir+"/IMG_A.XML", []byte("<rpc/>"))
	fs.AddFile(inputDir+"/IMG_B.XML", []byte("<rpc/>"))
	fs.AddFile(inputDir+"/WGS84toUTM.xml", []byte("<sys/>"))
	return fs
}

// scriptTool wires a mock StereoTool that creates the expected artifacts of
// every subcommand in fs.
func scriptTool(fs *mocks.FileSystem) *mocks.StereoTool {
	tool := mocks.NewStereoTool()
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		switch call.Name {
		case "Tapioca":
			fs.AddDir(inputDir + "/Homol")
			fs.AddFile(homol.PairFile(inputDir, "IMG_A.TIF", "IMG_B.TIF"),
				[]byte("100 200 110 210\n300 400 312 404\n"))
		case "Convert2GenBundle":
			fs.AddDir(inputDir + "/Ori-RPC-d0")
		case "Campari":
			fs.AddDir(inputDir + "/Ori-RPC-d0-adj")
		case "Malt":
			fs.AddFile(inputDir+"/"+pipeline.DSMFile, []byte("tif"))
			fs.AddFile(inputDir+"/"+pipeline.DSMWorldFile, []byte("1.5\n0\n0\n-1.5\n419800\n4459200\n"))
			fs.AddFile(inputDir+"/"+pipeline.DSMGeoXMLFile,
				[]byte(`<FileOriMnt><NombrePixels>4600 3800</NombrePixels></FileOriMnt>`))
		case "GrShade":
			fs.AddFile(inputDir+"/"+pipeline.ShadeFile, []byte("tif"))
		case "Tawny":
			fs.AddFile(inputDir+"/"+pipeline.OrthoMosaicFile, []byte("tif"))
		}
		return ports.CommandResult{Stdout: call.Name + " done"}, nil
	}
	return tool
}

func newOrchestrator(fs *mocks.FileSystem, tool *mocks.StereoTool, geo *mocks.Georeferencer, sink ports.DebugSink) *orchestrator.Orchestrator {
	log := logger.NewNoop()
	plotter := mocks.NewPlotter()
	return orchestrator.New(
		tiepoints.New(tool, fs, plotter, sink, log),
		orient.New(tool, fs, log),
		surface.New(tool, fs, plotter, sink, log),
		ortho.New(tool, fs, plotter, sink, log),
		georef.New(geo, fs, log),
		fs,
		sink,
		log,
	)
}

func runConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	cfg.InputDir = inputDir
	return cfg
}

func TestPipeline(t *testing.T) {
	fs := newInputFS()
	tool := scriptTool(fs)
	geo := mocks.NewGeoreferencer()
	geo.OnTranslate = func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
		fs.AddFile(dir+"/"+output, []byte("geotiff"))
		return ports.CommandResult{}, nil
	}

	orch := newOrchestrator(fs, tool, geo, mocks.NewDebugSink(false))
	result, err := orch.Run(context.Background(), runConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Subcommand order is fixed.
	var names []string
	for _, call := range tool.Calls() {
		names = append(names, call.Name)
	}
	wantOrder := "Tapioca,Convert2GenBundle,Campari,Malt,GrShade,Tawny"
	if strings.Join(names, ",") != wantOrder {
		t.Errorf("unexpected subcommand order %v", names)
	}

	// Georeferencing runs last with the extent derived from the world file.
	if len(geo.Calls()) != 1 {
		t.Fatalf("expected one translate call, got %d", len(geo.Calls()))
	}
	wantBounds := ports.GeoBounds{
		UpperLeftX:  419800,
		UpperLeftY:  4459200,
		LowerRightX: 419800 + 4600*1.5,
		LowerRightY: 4459200 - 3800*1.5,
	}
	if geo.Bounds != wantBounds {
		t.Errorf("unexpected bounds %+v", geo.Bounds)
	}

	if result.TiePointCount != 2 {
		t.Errorf("unexpected tie point count %d", result.TiePointCount)
	}
	if result.GeoDSMPath != pipeline.GeoDSMFile {
		t.Errorf("unexpected geo DSM path %q", result.GeoDSMPath)
	}
	if result.RasterWidth != 4600 || result.RasterHeight != 3800 {
		t.Errorf("unexpected raster size %dx%d", result.RasterWidth, result.RasterHeight)
	}
	if len(result.Steps) != 7 {
		t.Errorf("expected 7 steps, got %d", len(result.Steps))
	}
	if ok, _ := fs.Exists(inputDir + "/geo/DSM.tif"); !ok {
		t.Error("expected georeferenced DSM written")
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	run := func() orchestrator.RunResult {
		fs := newInputFS()
		tool := scriptTool(fs)
		geo := mocks.NewGeoreferencer()
		geo.OnTranslate = func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
			fs.AddFile(dir+"/"+output, []byte("geotiff"))
			return ports.CommandResult{}, nil
		}

		orch := newOrchestrator(fs, tool, geo, mocks.NewDebugSink(false))
		result, err := orch.Run(context.Background(), runConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result
	}

	first := run()
	second := run()

	if first.TiePointCount != second.TiePointCount {
		t.Error("expected identical tie point counts across runs")
	}
	if len(first.Steps) != len(second.Steps) {
		t.Fatal("expected identical step counts across runs")
	}
	for i := range first.Steps {
		if first.Steps[i].Name != second.Steps[i].Name {
			t.Errorf("step %d differs: %q vs %q", i, first.Steps[i].Name, second.Steps[i].Name)
		}
	}
}

func TestPipeline_RerunOverwritesArtifacts(t *testing.T) {
	fs := newInputFS()
	tool := scriptTool(fs)
	geo := mocks.NewGeoreferencer()
	runs := 0
	geo.OnTranslate = func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
		runs++
		fs.AddFile(dir+"/"+output, []byte(fmt.Sprintf("geotiff run %d", runs)))
		return ports.CommandResult{}, nil
	}

	orch := newOrchestrator(fs, tool, geo, mocks.NewDebugSink(false))
	if _, err := orch.Run(context.Background(), runConfig()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// The directory now holds Homol/, Ori-*, MEC-Malt/ and geo/DSM.tif from
	// the first run. A second run on the same directory must redo every step
	// rather than skip any of them.
	result, err := orch.Run(context.Background(), runConfig())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	var names []string
	for _, call := range tool.Calls() {
		names = append(names, call.Name)
	}
	wantOrder := "Tapioca,Convert2GenBundle,Campari,Malt,GrShade,Tawny"
	if strings.Join(names, ",") != wantOrder+","+wantOrder {
		t.Errorf("unexpected subcommand sequence %v", names)
	}
	if len(geo.Calls()) != 2 {
		t.Fatalf("expected two translate calls, got %d", len(geo.Calls()))
	}
	if len(result.Steps) != 7 {
		t.Errorf("expected 7 steps on rerun, got %d", len(result.Steps))
	}

	data, ok := fs.GetFile(inputDir + "/geo/DSM.tif")
	if !ok {
		t.Fatal("expected georeferenced DSM written")
	}
	if string(data) != "geotiff run 2" {
		t.Errorf("expected DSM rewritten by the second run, got %q", data)
	}
}

func TestPipeline_AbortsOnToolFailure(t *testing.T) {
	fs := newInputFS()
	tool := scriptTool(fs)
	inner := tool.OnCall
	tool.OnCall = func(call mocks.ToolCall) (ports.CommandResult, error) {
		if call.Name == "Malt" {
			return ports.CommandResult{ExitCode: 1, Stderr: "correlation failed"},
				&exitError{}
		}
		return inner(call)
	}

	orch := newOrchestrator(fs, tool, mocks.NewGeoreferencer(), mocks.NewDebugSink(false))
	_, err := orch.Run(context.Background(), runConfig())
	if err == nil {
		t.Fatal("expected error when Malt fails")
	}
	if !strings.Contains(err.Error(), "surface stage") {
		t.Errorf("expected surface stage error, got %v", err)
	}

	// Nothing after the failed subcommand may run.
	calls := tool.Calls()
	if calls[len(calls)-1].Name != "Malt" {
		t.Errorf("expected pipeline stopped at Malt, got %v", calls)
	}
}

func TestPipeline_FailsBeforeExternalStepsWithOneImage(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddDir(inputDir)
	fs.AddFile(inputDir+"/only.TIF", []byte("tif"))

	tool := scriptTool(fs)
	orch := newOrchestrator(fs, tool, mocks.NewGeoreferencer(), mocks.NewDebugSink(false))

	_, err := orch.Run(context.Background(), runConfig())
	if err == nil {
		t.Fatal("expected error for single image")
	}
	if len(tool.Calls()) != 0 {
		t.Errorf("expected no subcommand to run, got %v", tool.Calls())
	}
}

func TestPipeline_DebugSinkArtifacts(t *testing.T) {
	fs := newInputFS()
	tool := scriptTool(fs)
	geo := mocks.NewGeoreferencer()
	geo.OnTranslate = func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
		fs.AddFile(dir+"/"+output, []byte("geotiff"))
		return ports.CommandResult{}, nil
	}

	sink := mocks.NewDebugSink(true)
	orch := newOrchestrator(fs, tool, geo, sink)
	if _, err := orch.Run(context.Background(), runConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var set struct {
		Dir    string   `json:"dir"`
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(sink.InputSetJSON, &set); err != nil {
		t.Fatalf("parse input set JSON: %v", err)
	}
	if set.Dir != inputDir || len(set.Images) != 2 {
		t.Errorf("unexpected input set %+v", set)
	}

	if sink.RunJSON == nil {
		t.Error("expected run JSON saved")
	}
	if sink.StepLogs["tapioca"] == "" {
		t.Error("expected tapioca console log saved")
	}
}

// exitError mimics a non-zero process exit.
type exitError struct{}

func (e *exitError) Error() string { return "exit status 1" }
