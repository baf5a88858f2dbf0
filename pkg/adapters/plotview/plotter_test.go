package plotview

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTiePointScatter(t *testing.T) {
	p := New()

	points := [][4]float64{
		{100, 200, 110, 210},
		{300, 400, 310, 410},
		{500, 600, 510, 610},
	}
	data, err := p.TiePointScatter(points, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("expected PNG output")
	}

	img, err := p.DecodeRaster(data)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("expected non-empty figure")
	}
}

func TestTiePointScatter_LimitsPoints(t *testing.T) {
	p := New()

	points := make([][4]float64, 500)
	for i := range points {
		points[i] = [4]float64{float64(i), float64(i), float64(i) + 10, float64(i) + 10}
	}
	if _, err := p.TiePointScatter(points, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTiePointScatter_Empty(t *testing.T) {
	p := New()
	if _, err := p.TiePointScatter(nil, 100); err == nil {
		t.Fatal("expected error for empty point set")
	}
}

func TestPreview(t *testing.T) {
	p := New()

	images := []image.Image{
		image.NewGray(image.Rect(0, 0, 640, 480)),
		image.NewGray(image.Rect(0, 0, 640, 480)),
	}
	data, err := p.Preview(images, []string{"Image 1", "Image 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("expected PNG output")
	}

	img, err := p.DecodeRaster(data)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	// Both panels scaled to the preview height plus margins.
	if img.Bounds().Dy() <= previewHeight {
		t.Errorf("unexpected preview height %d", img.Bounds().Dy())
	}
}

func TestPreview_Empty(t *testing.T) {
	p := New()
	if _, err := p.Preview(nil, nil); err == nil {
		t.Fatal("expected error for empty image list")
	}
}

func TestDecodeRaster_PNG(t *testing.T) {
	p := New()

	data := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 8, 8)))
	img, err := p.DecodeRaster(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}
}

func TestDecodeRaster_Garbage(t *testing.T) {
	p := New()
	if _, err := p.DecodeRaster([]byte("not an image")); err == nil {
		t.Fatal("expected error for undecodable data")
	}
}

func TestScaleToHeight(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 100))

	scaled := scaleToHeight(img, 50)
	if scaled.Bounds().Dy() != 50 {
		t.Errorf("unexpected height %d", scaled.Bounds().Dy())
	}
	if scaled.Bounds().Dx() != 100 {
		t.Errorf("unexpected width %d", scaled.Bounds().Dx())
	}

	// Already at target height, returned unchanged.
	same := scaleToHeight(img, 100)
	if same != img {
		t.Error("expected image returned unchanged")
	}
}
