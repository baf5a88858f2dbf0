package homol

import "gonum.org/v1/gonum/stat"

// Stats summarizes the disparities of a tie-point set. The disparity of a
// point is the coordinate difference between its two image positions; its
// spread is a quick sanity indicator for the matching quality.
type Stats struct {
	Count    int     `json:"count"`
	MeanDX   float64 `json:"mean_dx"`
	MeanDY   float64 `json:"mean_dy"`
	StdDevDX float64 `json:"stddev_dx"`
	StdDevDY float64 `json:"stddev_dy"`
}

// Summarize computes disparity statistics for the given points.
func Summarize(points []Point) Stats {
	s := Stats{Count: len(points)}
	if len(points) == 0 {
		return s
	}

	dx := make([]float64, len(points))
	dy := make([]float64, len(points))
	for i, p := range points {
		dx[i] = p.X2 - p.X1
		dy[i] = p.Y2 - p.Y1
	}

	s.MeanDX = stat.Mean(dx, nil)
	s.MeanDY = stat.Mean(dy, nil)
	if len(points) > 1 {
		s.StdDevDX = stat.StdDev(dx, nil)
		s.StdDevDY = stat.StdDev(dy, nil)
	}

	return s
}
