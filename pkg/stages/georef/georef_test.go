package georef

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stereopipe/pkg/adapters/logger"
	"github.com/user/stereopipe/pkg/mocks"
	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

func newInput() pipeline.GeorefInput {
	return pipeline.GeorefInput{
		Dir:           "/data",
		DSMPath:       pipeline.DSMFile,
		WorldFilePath: pipeline.DSMWorldFile,
		GeoXMLPath:    pipeline.DSMGeoXMLFile,
		OutputPath:    pipeline.GeoDSMFile,
		SRS:           "EPSG:32638",
	}
}

func setupFS() *mocks.FileSystem {
	fs := mocks.NewFileSystem()
	fs.AddFile("/data/"+pipeline.DSMWorldFile, []byte("1.5\n0\n0\n-1.5\n419800\n4459200\n"))
	fs.AddFile("/data/"+pipeline.DSMGeoXMLFile,
		[]byte(`<FileOriMnt><NombrePixels>100 200</NombrePixels></FileOriMnt>`))
	return fs
}

func TestExecute(t *testing.T) {
	fs := setupFS()
	geo := mocks.NewGeoreferencer()
	geo.OnTranslate = func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
		fs.AddFile(dir+"/"+output, []byte("tif"))
		return ports.CommandResult{}, nil
	}

	stage := New(geo, fs, logger.NewNoop())
	result, err := stage.Execute(context.Background(), newInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.OutputPath != pipeline.GeoDSMFile {
		t.Errorf("unexpected output path %q", result.OutputPath)
	}
	if result.Width != 100 || result.Height != 200 {
		t.Errorf("unexpected raster size %dx%d", result.Width, result.Height)
	}

	want := ports.GeoBounds{
		UpperLeftX:  419800,
		UpperLeftY:  4459200,
		LowerRightX: 419800 + 150,
		LowerRightY: 4459200 - 300,
	}
	if geo.Bounds != want {
		t.Errorf("unexpected bounds %+v", geo.Bounds)
	}

	if len(result.Steps) != 1 || result.Steps[0].Name != "gdal_translate" {
		t.Errorf("unexpected steps %+v", result.Steps)
	}
}

func TestExecute_MissingWorldFile(t *testing.T) {
	fs := mocks.NewFileSystem()
	stage := New(mocks.NewGeoreferencer(), fs, logger.NewNoop())

	_, err := stage.Execute(context.Background(), newInput())
	if err == nil {
		t.Fatal("expected error for missing world file")
	}
}

func TestExecute_TranslateFails(t *testing.T) {
	fs := setupFS()
	geo := mocks.NewGeoreferencer()
	geo.OnTranslate = func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
		return ports.CommandResult{ExitCode: 1}, errors.New("exit 1")
	}

	stage := New(geo, fs, logger.NewNoop())
	_, err := stage.Execute(context.Background(), newInput())
	if err == nil {
		t.Fatal("expected error when gdal_translate fails")
	}
}

func TestExecute_MissingOutput(t *testing.T) {
	fs := setupFS()
	// Translate succeeds but leaves no file behind.
	stage := New(mocks.NewGeoreferencer(), fs, logger.NewNoop())

	_, err := stage.Execute(context.Background(), newInput())
	if !errors.Is(err, pipeline.ErrMissingOutput) {
		t.Fatalf("expected ErrMissingOutput, got %v", err)
	}
}
