package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWriteFile(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "nested", "file.txt")

	if err := fs.WriteFile(path, []byte("content")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("unexpected content %q", string(data))
	}
}

func TestExists(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	ok, err := fs.Exists(path)
	if err != nil || ok {
		t.Errorf("expected false for missing file, got %v %v", ok, err)
	}

	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	ok, err = fs.Exists(path)
	if err != nil || !ok {
		t.Errorf("expected true for existing file, got %v %v", ok, err)
	}

	ok, err = fs.Exists(dir)
	if err != nil || !ok {
		t.Errorf("expected true for existing directory, got %v %v", ok, err)
	}
}

func TestMkdirAll(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := fs.MkdirAll(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := fs.Exists(path); !ok {
		t.Error("expected directory created")
	}
}

func TestGlob(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	for _, name := range []string{"b.TIF", "a.TIF", "c.xml", "d.tif"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	matches, err := fs.Glob(dir, "*.TIF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %v", matches)
	}
	// Sorted lexically.
	if filepath.Base(matches[0]) != "a.TIF" || filepath.Base(matches[1]) != "b.TIF" {
		t.Errorf("unexpected matches %v", matches)
	}
}

func TestGlob_NoMatches(t *testing.T) {
	fs := New()

	matches, err := fs.Glob(t.TempDir(), "*.TIF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestRemove(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := fs.Exists(path); ok {
		t.Error("expected file removed")
	}
}
