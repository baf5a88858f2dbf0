// Package homol reads tie points from MicMac's Homol export directories.
//
// Tapioca writes matched points for an image pair to
// Homol/Pastis<image2>/<image1>.txt with one x1 y1 x2 y2 row per line.
package homol

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/stereopipe/pkg/ports"
)

// Point is one matched tie point: a coordinate in each image of the pair.
type Point struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Rows converts points into plain x1,y1,x2,y2 rows for plotting.
func Rows(points []Point) [][4]float64 {
	rows := make([][4]float64, len(points))
	for i, p := range points {
		rows[i] = [4]float64{p.X1, p.Y1, p.X2, p.Y2}
	}
	return rows
}

// PairFile returns the tie-point file path for an ordered image pair.
func PairFile(dir, img1, img2 string) string {
	return filepath.Join(dir, "Homol", "Pastis"+img2, img1+".txt")
}

// LoadPair reads the tie points for two images from the Homol directory under
// dir. It tries Pastis<img2>/<img1>.txt first and falls back to the reversed
// pair. A missing file yields an empty slice, not an error: Tapioca produces
// no file when no matches were found.
func LoadPair(fs ports.FileSystem, dir, img1, img2 string) ([]Point, error) {
	candidates := []string{
		PairFile(dir, img1, img2),
		PairFile(dir, img2, img1),
	}

	for _, path := range candidates {
		ok, err := fs.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !ok {
			continue
		}
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return Parse(strings.NewReader(string(data)))
	}

	return nil, nil
}

// Parse reads tie-point rows from r. Blank lines and lines starting with '#'
// are skipped; rows with fewer than four columns are ignored.
func Parse(r io.Reader) ([]Point, error) {
	var points []Point

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		var values [4]float64
		ok := true
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			continue
		}

		points = append(points, Point{X1: values[0], Y1: values[1], X2: values[2], Y2: values[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tie points: %w", err)
	}

	return points, nil
}
