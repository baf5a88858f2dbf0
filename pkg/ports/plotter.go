package ports

import "image"

// Plotter abstracts the rendering of diagnostic figures.
// All methods return encoded PNG data ready to hand to a DebugSink.
type Plotter interface {
	// TiePointScatter renders two side-by-side scatter panels of tie-point
	// coordinates, one per image of the stereo pair. The points slice holds
	// x1,y1,x2,y2 rows. At most maxPoints rows are drawn.
	TiePointScatter(points [][4]float64, maxPoints int) ([]byte, error)

	// Preview renders one or more raster images side by side with titles.
	Preview(images []image.Image, titles []string) ([]byte, error)

	// DecodeRaster decodes raster image data (TIFF, PNG or JPEG).
	DecodeRaster(data []byte) (image.Image, error)
}
