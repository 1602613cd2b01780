package bands

import (
	"image"

	"golang.org/x/image/draw"
)

// PixelBuffer is a decoded image exposed as a flat row-major channel buffer.
// Channels is 3 (RGB) or 4 (RGBA); alpha is never read.
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewPixelBuffer wraps an existing channel buffer without copying it.
func NewPixelBuffer(pix []uint8, width, height, channels int) *PixelBuffer {
	return &PixelBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      pix,
	}
}

// FromImage converts any decoded image into a 4-channel buffer holding
// non-premultiplied channel values. Tightly packed NRGBA images, and opaque
// RGBA images, are used in place; everything else is copied.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Sub-images share the parent's Pix, which may run past the last row.
	n := width * height * 4
	switch src := img.(type) {
	case *image.NRGBA:
		if src.Stride == width*4 && bounds.Min == (image.Point{}) && len(src.Pix) >= n {
			return NewPixelBuffer(src.Pix[:n], width, height, 4)
		}
	case *image.RGBA:
		// Premultiplication is a no-op for opaque pixels.
		if src.Stride == width*4 && bounds.Min == (image.Point{}) && len(src.Pix) >= n && src.Opaque() {
			return NewPixelBuffer(src.Pix[:n], width, height, 4)
		}
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Copy(canvas, image.Point{}, img, bounds, draw.Src, nil)
	return NewPixelBuffer(canvas.Pix, width, height, 4)
}

// validate checks the buffer's dimensions against its channel data.
func (b *PixelBuffer) validate() error {
	if b == nil {
		return invalidf("pixel buffer is nil")
	}
	if b.Height < 0 {
		return invalidf("image height must not be negative, got %d", b.Height)
	}
	if b.Height > 0 && b.Width <= 0 {
		return invalidf("image width must be positive, got %d", b.Width)
	}
	if b.Channels != 3 && b.Channels != 4 {
		return invalidf("channel count must be 3 or 4, got %d", b.Channels)
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return invalidf("pixel buffer holds %d values, expected %d (%dx%dx%d)",
			len(b.Pix), want, b.Width, b.Height, b.Channels)
	}
	return nil
}
