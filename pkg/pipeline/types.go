package pipeline

import (
	"github.com/user/stereopipe/pkg/homol"
	"github.com/user/stereopipe/pkg/ports"
)

// StepOutput records one external command invocation within a stage.
type StepOutput struct {
	Name       string `json:"name"`
	Command    string `json:"command"`
	DurationMs int64  `json:"duration_ms"`
	Console    string `json:"console,omitempty"`
}

// =============================================================================
// Tie-Point Stage Types
// =============================================================================

// TiePointsInput contains parameters for tie-point extraction.
type TiePointsInput struct {
	Dir          string // Input directory (also the working directory)
	ImagePattern string // Regex the suite matches images with (e.g. ".*.TIF")
	Resolution   int    // Working resolution in pixels; -1 = full resolution
	Image1       string // Base name of the first image of the stereo pair
	Image2       string // Base name of the second image of the stereo pair
}

// TiePointsResult contains the extracted tie points and their statistics.
type TiePointsResult struct {
	Points []homol.Point
	Stats  homol.Stats
	Steps  []StepOutput
}

// =============================================================================
// Orientation Stage Types
// =============================================================================

// OrientInput contains parameters for orientation conversion and bundle
// adjustment.
type OrientInput struct {
	Dir          string
	ImagePattern string // Pattern for adjustment (e.g. ".*TIF")
	PairPattern  string // Capture pattern for conversion (e.g. "(.*).TIF")
	RPCPattern   string // RPC reference pattern (e.g. "$1.XML")
	Projection   string // Projection definition file name (ChSys)
	Degree       int    // Polynomial correction degree

	InitialOrientation  string // Orientation written by conversion (e.g. "RPC-d0")
	AdjustedOrientation string // Orientation written by adjustment (e.g. "RPC-d0-adj")
}

// OrientResult contains the adjusted orientation name.
type OrientResult struct {
	Orientation string
	Steps       []StepOutput
}

// =============================================================================
// Surface Stage Types
// =============================================================================

// SurfaceInput contains parameters for DSM correlation and shaded relief.
type SurfaceInput struct {
	Dir          string
	Mode         string // Malt correlation mode (e.g. "UrbanMNE")
	ImagePattern string
	Orientation  string // Adjusted orientation to correlate with
	Malt         ports.MaltOptions
	ShadeMode    string // GrShade shading mode (e.g. "IgnE")
}

// SurfaceResult contains the generated surface rasters, relative to Dir.
type SurfaceResult struct {
	DSMPath       string
	WorldFilePath string
	GeoXMLPath    string
	ShadePath     string
	Steps         []StepOutput
}

// =============================================================================
// Orthophoto Stage Types
// =============================================================================

// OrthoInput contains parameters for orthophoto mosaicking.
type OrthoInput struct {
	Dir string
}

// OrthoResult contains the mosaic path, relative to Dir.
type OrthoResult struct {
	MosaicPath string
	Steps      []StepOutput
}

// =============================================================================
// Georeferencing Stage Types
// =============================================================================

// GeorefInput contains parameters for DSM georeferencing.
type GeorefInput struct {
	Dir           string
	DSMPath       string // DSM raster, relative to Dir
	WorldFilePath string // TFW world file, relative to Dir
	GeoXMLPath    string // Georeferencing XML with raster dimensions
	OutputPath    string // Output raster, relative to Dir
	SRS           string // Spatial reference system (e.g. "EPSG:32638")
}

// GeorefResult contains the georeferenced output and its derived extent.
type GeorefResult struct {
	OutputPath string
	Bounds     ports.GeoBounds
	Width      int
	Height     int
	Steps      []StepOutput
}
