package bands

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of band heights in a band list.
type Summary struct {
	Count     int     `json:"count" yaml:"count"`
	Rows      int     `json:"rows" yaml:"rows"`
	MinHeight int     `json:"minHeight" yaml:"minHeight"`
	MaxHeight int     `json:"maxHeight" yaml:"maxHeight"`
	Mean      float64 `json:"mean" yaml:"mean"`
	StdDev    float64 `json:"stdDev" yaml:"stdDev"`
}

// Summarise computes height statistics for bands. An empty list yields a
// zero Summary.
func Summarise(bands []Band) Summary {
	if len(bands) == 0 {
		return Summary{}
	}

	heights := make([]float64, len(bands))
	for i, b := range bands {
		heights[i] = float64(b.Height)
	}

	s := Summary{
		Count:     len(bands),
		Rows:      int(floats.Sum(heights)),
		MinHeight: int(floats.Min(heights)),
		MaxHeight: int(floats.Max(heights)),
		Mean:      stat.Mean(heights, nil),
	}
	if len(heights) > 1 {
		s.StdDev = stat.StdDev(heights, nil)
	}
	return s
}

// String returns a one-line description of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("%d bands over %d rows (height min %d, max %d, mean %.2f, stddev %.2f)",
		s.Count, s.Rows, s.MinHeight, s.MaxHeight, s.Mean, s.StdDev)
}
