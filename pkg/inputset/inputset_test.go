package inputset

import (
	"errors"
	"testing"

	"github.com/user/stereopipe/pkg/mocks"
)

func setupDir(fs *mocks.FileSystem, dir string, files ...string) {
	fs.AddDir(dir)
	for _, f := range files {
		fs.AddFile(dir+"/"+f, []byte("data"))
	}
}

func TestDiscover(t *testing.T) {
	fs := mocks.NewFileSystem()
	setupDir(fs, "/data",
		"IMG_A.TIF", "IMG_B.TIF",
		"IMG_A.XML", "IMG_B.XML",
		"WGS84toUTM.xml")

	set, err := Discover(fs, "/data", "WGS84toUTM.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(set.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(set.Images))
	}
	if set.Images[0] != "/data/IMG_A.TIF" || set.Images[1] != "/data/IMG_B.TIF" {
		t.Errorf("unexpected images: %v", set.Images)
	}
	if set.RPCs["/data/IMG_A.TIF"] != "/data/IMG_A.XML" {
		t.Errorf("expected RPC pairing for IMG_A, got %q", set.RPCs["/data/IMG_A.TIF"])
	}
	if set.Projection != "/data/WGS84toUTM.xml" {
		t.Errorf("expected projection file, got %q", set.Projection)
	}
}

func TestDiscover_ImageNames(t *testing.T) {
	fs := mocks.NewFileSystem()
	setupDir(fs, "/data", "b.TIF", "a.TIF")

	set, err := Discover(fs, "/data", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := set.ImageNames()
	if len(names) != 2 || names[0] != "a.TIF" || names[1] != "b.TIF" {
		t.Errorf("expected sorted base names, got %v", names)
	}
}

func TestDiscover_MixedExtensions(t *testing.T) {
	fs := mocks.NewFileSystem()
	setupDir(fs, "/data", "left.tif", "right.tiff")

	set, err := Discover(fs, "/data", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Images) != 2 {
		t.Errorf("expected 2 images, got %d", len(set.Images))
	}
}

func TestDiscover_NotEnoughImages(t *testing.T) {
	fs := mocks.NewFileSystem()
	setupDir(fs, "/data", "only.TIF")

	_, err := Discover(fs, "/data", "")
	if !errors.Is(err, ErrNotEnoughImages) {
		t.Fatalf("expected ErrNotEnoughImages, got %v", err)
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddDir("/data")

	_, err := Discover(fs, "/data", "")
	if !errors.Is(err, ErrNotEnoughImages) {
		t.Fatalf("expected ErrNotEnoughImages, got %v", err)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	fs := mocks.NewFileSystem()

	_, err := Discover(fs, "/nope", "")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if errors.Is(err, ErrNotEnoughImages) {
		t.Fatal("missing directory should not report ErrNotEnoughImages")
	}
}

func TestDiscover_MissingProjectionIsOptional(t *testing.T) {
	fs := mocks.NewFileSystem()
	setupDir(fs, "/data", "a.TIF", "b.TIF")

	set, err := Discover(fs, "/data", "WGS84toUTM.xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Projection != "" {
		t.Errorf("expected empty projection, got %q", set.Projection)
	}
}

func TestDiscover_RPCOptional(t *testing.T) {
	fs := mocks.NewFileSystem()
	setupDir(fs, "/data", "a.TIF", "b.TIF", "a.XML")

	set, err := Discover(fs, "/data", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := set.RPCs["/data/b.TIF"]; ok {
		t.Error("expected no RPC pairing for b.TIF")
	}
	if set.RPCs["/data/a.TIF"] != "/data/a.XML" {
		t.Errorf("expected RPC pairing for a.TIF, got %q", set.RPCs["/data/a.TIF"])
	}
}
