package bands

import (
	"math"

	"github.com/jmylchreest/colourbands/internal/colour"
)

// RGB is a colour with real-valued channels in [0, 255]. Averages stay
// fractional until they are encoded with Encode.
type RGB struct {
	R, G, B float64
}

// Distance returns the Euclidean distance between two colours in RGB space.
func (c RGB) Distance(other RGB) float64 {
	dr := c.R - other.R
	dg := c.G - other.G
	db := c.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Encode rounds each channel to the nearest integer (halves round up).
func (c RGB) Encode() colour.RGB {
	return colour.RGB{
		R: encodeChannel(c.R),
		G: encodeChannel(c.G),
		B: encodeChannel(c.B),
	}
}

func encodeChannel(v float64) uint8 {
	v = math.Floor(v + 0.5)
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// rgbSum accumulates channel totals over a run of rows.
type rgbSum struct {
	r, g, b float64
	n       int
}

func (s *rgbSum) add(c RGB) {
	s.r += c.R
	s.g += c.G
	s.b += c.B
	s.n++
}

func (s rgbSum) mean() RGB {
	n := float64(s.n)
	return RGB{R: s.r / n, G: s.g / n, B: s.b / n}
}
