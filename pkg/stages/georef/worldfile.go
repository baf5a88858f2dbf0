package georef

import (
	"fmt"
	"strconv"
	"strings"
)

// WorldFile holds the six affine parameters of a TFW world file.
// Line order: pixel size X, rotation about Y, rotation about X, pixel size Y
// (negative for north-up rasters), upper-left X, upper-left Y.
type WorldFile struct {
	PixelSizeX float64
	RotationY  float64
	RotationX  float64
	PixelSizeY float64
	UpperLeftX float64
	UpperLeftY float64
}

// ParseWorldFile parses TFW world file content.
func ParseWorldFile(data []byte) (WorldFile, error) {
	var wf WorldFile

	var values []float64
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return wf, fmt.Errorf("invalid world file value %q: %w", line, err)
		}
		values = append(values, v)
	}

	if len(values) < 6 {
		return wf, fmt.Errorf("invalid world file: expected 6 values, got %d", len(values))
	}

	wf.PixelSizeX = values[0]
	wf.RotationY = values[1]
	wf.RotationX = values[2]
	wf.PixelSizeY = values[3]
	wf.UpperLeftX = values[4]
	wf.UpperLeftY = values[5]
	return wf, nil
}
