package bands

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Span is the placement of one band in a rendered image.
type Span struct {
	Band Band

	// Y and Height are the exact, fractional placement in target rows.
	Y      float64
	Height float64

	// Top and Bottom bound the integer rows [Top, Bottom) that are painted.
	Top    int
	Bottom int
}

// Layout scales bands proportionally so they fill targetHeight rows and
// returns where each band lands. Band heights are read in their own units;
// the source image size plays no part.
func Layout(bands []Band, targetHeight int) ([]Span, error) {
	if len(bands) == 0 {
		return nil, invalidf("band list is empty")
	}
	if targetHeight <= 0 {
		return nil, invalidf("target height must be positive, got %d", targetHeight)
	}

	total := 0
	for i, b := range bands {
		if b.Height < 0 {
			return nil, invalidf("band %d has negative height %d", i, b.Height)
		}
		total += b.Height
	}
	if total == 0 {
		return nil, invalidf("total band height is zero")
	}

	scale := float64(targetHeight) / float64(total)
	spans := make([]Span, len(bands))
	currentY := 0.0

	for i, b := range bands {
		scaled := float64(b.Height) * scale
		top := clampRow(math.Round(currentY), targetHeight)
		currentY += scaled
		bottom := clampRow(math.Round(currentY), targetHeight)
		if i == len(bands)-1 {
			bottom = targetHeight
		}

		spans[i] = Span{
			Band:   b,
			Y:      currentY - scaled,
			Height: scaled,
			Top:    top,
			Bottom: bottom,
		}
	}

	return spans, nil
}

func clampRow(v float64, height int) int {
	if v < 0 {
		return 0
	}
	if v > float64(height) {
		return height
	}
	return int(v)
}

// Render paints bands as full-width solid rectangles into a new
// targetWidth x targetHeight image, stacked top to bottom.
func Render(bands []Band, targetWidth, targetHeight int) (*image.RGBA, error) {
	if targetWidth <= 0 {
		return nil, invalidf("target width must be positive, got %d", targetWidth)
	}
	spans, err := Layout(bands, targetHeight)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	for _, s := range spans {
		if s.Bottom <= s.Top {
			continue
		}
		rect := image.Rect(0, s.Top, targetWidth, s.Bottom)
		draw.Draw(img, rect, image.NewUniform(s.Band.Colour.RGBA()), image.Point{}, draw.Src)
	}

	return img, nil
}
