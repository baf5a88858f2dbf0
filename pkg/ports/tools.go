package ports

import "context"

// MaltOptions holds the tunable parameters of the Malt correlator.
type MaltOptions struct {
	CorrelationWindow int     // SzW: half-size of the correlation window
	Regularization    float64 // Regul: regularization factor
	MinVisibleImages  int     // NbVI: minimum images a point must be seen in
	GenerateOrtho     bool    // DoOrtho: also produce per-image orthoimages
	AbsoluteAltitude  bool    // EZA: export absolute altitudes
}

// StereoTool abstracts the photogrammetry suite's subcommands.
// Each call blocks until the underlying process exits; all paths are
// interpreted relative to dir, which is also the working directory.
type StereoTool interface {
	// Tapioca extracts tie points for all images matching pattern.
	// resolution is the working resolution in pixels; -1 is full resolution.
	Tapioca(ctx context.Context, dir, pattern string, resolution int) (CommandResult, error)

	// Convert2GenBundle converts RPC metadata into a generic bundle
	// orientation named orientation. pairPattern captures the image base name
	// and rpcPattern references the capture (e.g. "(.*).TIF" and "$1.XML").
	Convert2GenBundle(ctx context.Context, dir, pairPattern, rpcPattern, orientation, chSys string, degree int) (CommandResult, error)

	// Campari runs bundle adjustment, refining orientIn into orientOut.
	Campari(ctx context.Context, dir, pattern, orientIn, orientOut string) (CommandResult, error)

	// Malt correlates the images into a DSM using the given mode.
	Malt(ctx context.Context, dir, mode, pattern, orientation string, opts MaltOptions) (CommandResult, error)

	// GrShade renders a shaded relief of the DSM raster, restricted to mask.
	GrShade(ctx context.Context, dir, dsm, mode, mask string) (CommandResult, error)

	// Tawny mosaics the per-image orthoimages in orthoDir into one orthophoto.
	Tawny(ctx context.Context, dir, orthoDir string) (CommandResult, error)
}

// GeoBounds holds the geographic extent assigned to an output raster.
type GeoBounds struct {
	UpperLeftX  float64 `json:"upper_left_x"`
	UpperLeftY  float64 `json:"upper_left_y"`
	LowerRightX float64 `json:"lower_right_x"`
	LowerRightY float64 `json:"lower_right_y"`
}

// Georeferencer assigns a spatial reference system and extent to a raster.
type Georeferencer interface {
	// Translate writes a georeferenced copy of input to output with the
	// given SRS (e.g. "EPSG:32638") and corner coordinates assigned.
	Translate(ctx context.Context, dir, input, output, srs string, b GeoBounds) (CommandResult, error)
}
