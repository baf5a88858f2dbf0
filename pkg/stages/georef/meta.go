package georef

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// rasterMeta matches the georeferencing XML the suite writes next to the DSM.
// Only the raster dimensions are needed here.
type rasterMeta struct {
	NombrePixels string `xml:"NombrePixels"`
}

// ParseRasterSize extracts the raster width and height from the
// georeferencing XML. NombrePixels holds them as "width height".
func ParseRasterSize(data []byte) (width, height int, err error) {
	var meta rasterMeta
	if err := xml.Unmarshal(data, &meta); err != nil {
		return 0, 0, fmt.Errorf("parse georeferencing XML: %w", err)
	}
	if meta.NombrePixels == "" {
		return 0, 0, fmt.Errorf("NombrePixels element not found in XML")
	}

	fields := strings.Fields(meta.NombrePixels)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid NombrePixels value %q", meta.NombrePixels)
	}
	width, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid raster width %q: %w", fields[0], err)
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid raster height %q: %w", fields[1], err)
	}
	return width, height, nil
}
