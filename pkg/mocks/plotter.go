package mocks

import (
	"image"

	"github.com/user/stereopipe/pkg/ports"
)

// Plotter is a mock implementation of ports.Plotter that returns fixed PNG
// payloads without rendering anything.
type Plotter struct {
	ScatterCalls int
	PreviewCalls int

	TiePointScatterFunc func(points [][4]float64, maxPoints int) ([]byte, error)
	PreviewFunc         func(images []image.Image, titles []string) ([]byte, error)
	DecodeRasterFunc    func(data []byte) (image.Image, error)
}

// NewPlotter creates a new mock Plotter.
func NewPlotter() *Plotter {
	return &Plotter{}
}

func (m *Plotter) TiePointScatter(points [][4]float64, maxPoints int) ([]byte, error) {
	m.ScatterCalls++
	if m.TiePointScatterFunc != nil {
		return m.TiePointScatterFunc(points, maxPoints)
	}
	return []byte("png:scatter"), nil
}

func (m *Plotter) Preview(images []image.Image, titles []string) ([]byte, error) {
	m.PreviewCalls++
	if m.PreviewFunc != nil {
		return m.PreviewFunc(images, titles)
	}
	return []byte("png:preview"), nil
}

func (m *Plotter) DecodeRaster(data []byte) (image.Image, error) {
	if m.DecodeRasterFunc != nil {
		return m.DecodeRasterFunc(data)
	}
	return image.NewGray(image.Rect(0, 0, 4, 4)), nil
}

var _ ports.Plotter = (*Plotter)(nil)
