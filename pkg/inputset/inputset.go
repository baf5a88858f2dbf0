// Package inputset discovers and validates the input files of a stereo run.
package inputset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/stereopipe/pkg/ports"
)

// ErrNotEnoughImages is returned when fewer than two images are found.
// The pipeline must not invoke any external step in that case.
var ErrNotEnoughImages = errors.New("inputset: at least 2 images required")

// imagePatterns are the supported image file extensions.
var imagePatterns = []string{"*.tif", "*.TIF", "*.tiff", "*.TIFF"}

// InputSet describes the discovered contents of an input directory.
type InputSet struct {
	// Dir is the input directory path.
	Dir string `json:"dir"`

	// Images are the discovered image paths, sorted for deterministic order.
	Images []string `json:"images"`

	// RPCs maps an image path to its RPC metadata file, when present.
	RPCs map[string]string `json:"rpcs,omitempty"`

	// Projection is the path of the projection definition file, when present.
	Projection string `json:"projection,omitempty"`
}

// ImageNames returns the base names of the discovered images.
func (s InputSet) ImageNames() []string {
	names := make([]string, len(s.Images))
	for i, p := range s.Images {
		names[i] = filepath.Base(p)
	}
	return names
}

// Discover scans dir for images, paired RPC files and the projection
// definition file. It fails with ErrNotEnoughImages when fewer than two
// images match the supported extensions.
func Discover(fs ports.FileSystem, dir, projection string) (InputSet, error) {
	set := InputSet{Dir: dir, RPCs: make(map[string]string)}

	exists, err := fs.Exists(dir)
	if err != nil {
		return set, fmt.Errorf("stat input directory: %w", err)
	}
	if !exists {
		return set, fmt.Errorf("input directory does not exist: %s", dir)
	}

	for _, pattern := range imagePatterns {
		matches, err := fs.Glob(dir, pattern)
		if err != nil {
			return set, fmt.Errorf("scan %s: %w", pattern, err)
		}
		set.Images = append(set.Images, matches...)
	}
	sort.Strings(set.Images)

	if len(set.Images) < 2 {
		return set, fmt.Errorf("%w, found %d in %s", ErrNotEnoughImages, len(set.Images), dir)
	}

	// Pair RPC files by base name. MicMac ships RPC metadata next to the
	// image with an .xml or .XML extension.
	for _, img := range set.Images {
		base := strings.TrimSuffix(img, filepath.Ext(img))
		for _, ext := range []string{".xml", ".XML"} {
			rpc := base + ext
			if ok, err := fs.Exists(rpc); err == nil && ok {
				set.RPCs[img] = rpc
				break
			}
		}
	}

	if projection != "" {
		path := filepath.Join(dir, projection)
		if ok, err := fs.Exists(path); err == nil && ok {
			set.Projection = path
		}
	}

	return set, nil
}
