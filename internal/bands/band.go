package bands

import "github.com/jmylchreest/colourbands/internal/colour"

// Band is a contiguous run of source rows drawn as one solid colour.
// Height and StartY are measured in source image rows.
type Band struct {
	Colour colour.RGB `json:"colour" yaml:"colour"`
	Height int        `json:"height" yaml:"height"`
	StartY int        `json:"startY" yaml:"startY"`
}

// End returns the first row after the band.
func (b Band) End() int {
	return b.StartY + b.Height
}

// TotalHeight returns the sum of all band heights.
func TotalHeight(bands []Band) int {
	total := 0
	for _, b := range bands {
		total += b.Height
	}
	return total
}

// Validate checks that bands are non-empty, have positive heights and tile
// the rows [0, TotalHeight) top to bottom without gaps or overlaps.
func Validate(bands []Band) error {
	if len(bands) == 0 {
		return invalidf("band list is empty")
	}

	next := 0
	for i, b := range bands {
		if b.Height <= 0 {
			return invalidf("band %d has non-positive height %d", i, b.Height)
		}
		if b.StartY != next {
			return invalidf("band %d starts at row %d, expected %d", i, b.StartY, next)
		}
		next = b.End()
	}
	return nil
}
