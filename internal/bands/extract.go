package bands

import "math"

// Default extraction settings.
const (
	DefaultColourThreshold = 25.0
	DefaultMinBandHeight   = 2
)

// Options controls how rows are grouped into bands.
type Options struct {
	// ColourThreshold is the largest RGB distance between a row and the
	// running band average before the band becomes a candidate to close.
	// Typical values are 5-100; lower values produce more bands.
	ColourThreshold float64

	// MinBandHeight is the number of rows a band must hold before it is
	// allowed to close. It overrides both the threshold and the height cap.
	MinBandHeight int
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		ColourThreshold: DefaultColourThreshold,
		MinBandHeight:   DefaultMinBandHeight,
	}
}

// Validate validates the extraction options.
func (o Options) Validate() error {
	if math.IsNaN(o.ColourThreshold) || o.ColourThreshold < 0 {
		return invalidf("colour threshold must be a non-negative number, got %v", o.ColourThreshold)
	}
	if o.MinBandHeight < 1 {
		return invalidf("minimum band height must be at least 1, got %d", o.MinBandHeight)
	}
	return nil
}

// RowColours returns the average colour of every row in the buffer.
func RowColours(buf *PixelBuffer) ([]RGB, error) {
	if err := buf.validate(); err != nil {
		return nil, err
	}
	return rowColours(buf), nil
}

func rowColours(buf *PixelBuffer) []RGB {
	rows := make([]RGB, buf.Height)
	stride := buf.Width * buf.Channels
	width := float64(buf.Width)

	for y := range rows {
		row := buf.Pix[y*stride : (y+1)*stride]
		var r, g, b uint64
		for i := 0; i < len(row); i += buf.Channels {
			r += uint64(row[i])
			g += uint64(row[i+1])
			b += uint64(row[i+2])
		}
		rows[y] = RGB{
			R: float64(r) / width,
			G: float64(g) / width,
			B: float64(b) / width,
		}
	}

	return rows
}

// Extract groups the rows of buf into bands of similar colour.
//
// Rows are scanned top to bottom. A band becomes a candidate to close when
// the next row is further than opts.ColourThreshold from the band's running
// average, or when the band already holds more than a third of the image's
// rows. A candidate only closes once the band holds at least
// opts.MinBandHeight rows; the trailing band is always emitted regardless of
// its height. An image with no rows yields no bands.
func Extract(buf *PixelBuffer, opts Options) ([]Band, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rows, err := RowColours(buf)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Band{}, nil
	}

	height := len(rows)
	limit := float64(height) / 3

	var result []Band
	bandStart := 0
	var sum rgbSum
	sum.add(rows[0])

	for y := 1; y < height; y++ {
		count := y - bandStart
		distance := rows[y].Distance(sum.mean())

		if distance > opts.ColourThreshold || float64(count) > limit {
			if count >= opts.MinBandHeight {
				result = append(result, Band{
					Colour: sum.mean().Encode(),
					Height: count,
					StartY: bandStart,
				})
				bandStart = y
				sum = rgbSum{}
			}
		}
		sum.add(rows[y])
	}

	result = append(result, Band{
		Colour: sum.mean().Encode(),
		Height: height - bandStart,
		StartY: bandStart,
	})

	return result, nil
}
