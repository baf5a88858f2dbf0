// Package plotview renders diagnostic figures for pipeline results.
// Tie-point scatter plots are drawn with gonum/plot; raster previews are
// composed with the gg library.
package plotview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/stereopipe/pkg/ports"
)

const (
	panelWidth  = 5 * vg.Inch
	panelHeight = 4 * vg.Inch

	previewHeight = 360
	previewMargin = 12
	titleHeight   = 24
)

// Plotter implements ports.Plotter.
type Plotter struct{}

// New creates a new Plotter.
func New() *Plotter {
	return &Plotter{}
}

// TiePointScatter renders one scatter panel per image of the stereo pair and
// composes them side by side. Rows beyond maxPoints are dropped from the
// front-heavy sample, matching the limited visualization of dense tie sets.
func (p *Plotter) TiePointScatter(points [][4]float64, maxPoints int) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no tie points to plot")
	}
	if maxPoints > 0 && len(points) > maxPoints {
		points = points[:maxPoints]
	}

	left, err := renderPanel(points, 0, fmt.Sprintf("Tie Points - Image 1 (%d points)", len(points)),
		color.RGBA{R: 220, G: 50, B: 47, A: 255})
	if err != nil {
		return nil, err
	}
	right, err := renderPanel(points, 2, fmt.Sprintf("Tie Points - Image 2 (%d points)", len(points)),
		color.RGBA{R: 38, G: 139, B: 210, A: 255})
	if err != nil {
		return nil, err
	}

	return composePanels([]image.Image{left, right})
}

// renderPanel draws the coordinates at column offset (0 for image 1, 2 for
// image 2) into a single scatter plot and returns it as an image.
func renderPanel(points [][4]float64, offset int, title string, c color.Color) (image.Image, error) {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "X"
	pl.Y.Label.Text = "Y"

	xys := make(plotter.XYs, len(points))
	for i, row := range points {
		xys[i].X = row[offset]
		// Negate Y so the image origin (top-left) is at the top of the plot.
		xys[i].Y = -row[offset+1]
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(1)
	pl.Add(scatter)

	wt, err := pl.WriterTo(panelWidth, panelHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("render scatter: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode scatter: %w", err)
	}

	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode scatter: %w", err)
	}
	return img, nil
}

// Preview composes one or more raster images side by side with titles and
// returns the figure as PNG.
func (p *Plotter) Preview(images []image.Image, titles []string) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images to preview")
	}

	scaled := make([]image.Image, len(images))
	totalWidth := previewMargin
	for i, img := range images {
		scaled[i] = scaleToHeight(img, previewHeight)
		totalWidth += scaled[i].Bounds().Dx() + previewMargin
	}

	dc := gg.NewContext(totalWidth, previewHeight+titleHeight+2*previewMargin)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	x := previewMargin
	for i, img := range scaled {
		dc.DrawImage(img, x, titleHeight+previewMargin)
		if i < len(titles) && titles[i] != "" {
			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(titles[i],
				float64(x+img.Bounds().Dx()/2), float64(titleHeight)/2+4, 0.5, 0.5)
		}
		x += img.Bounds().Dx() + previewMargin
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRaster decodes raster image data. TIFF, PNG and JPEG are supported
// through the registered image decoders.
func (p *Plotter) DecodeRaster(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	return img, nil
}

// composePanels tiles already-rendered plot panels horizontally.
func composePanels(panels []image.Image) ([]byte, error) {
	width := 0
	height := 0
	for _, img := range panels {
		width += img.Bounds().Dx()
		if img.Bounds().Dy() > height {
			height = img.Bounds().Dy()
		}
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	x := 0
	for _, img := range panels {
		dc.DrawImage(img, x, 0)
		x += img.Bounds().Dx()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode plot: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleToHeight scales img to the target height preserving aspect ratio.
func scaleToHeight(img image.Image, height int) image.Image {
	b := img.Bounds()
	if b.Dy() == 0 || b.Dy() == height {
		return img
	}
	width := b.Dx() * height / b.Dy()
	if width < 1 {
		width = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// Ensure Plotter implements ports.Plotter
var _ ports.Plotter = (*Plotter)(nil)
