//go:build ignore

// Test image generator for trying out band extraction by hand.
//
//	go run testdata/generate_test_image.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
)

func main() {
	const width, height = 400, 400

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Stripes of distinct colours with uneven heights, and a gradient at
	// the bottom that should merge into a handful of bands.
	stripes := []struct {
		c      color.RGBA
		height int
	}{
		{color.RGBA{R: 20, G: 24, B: 60, A: 255}, 90},    // Night
		{color.RGBA{R: 230, G: 120, B: 40, A: 255}, 30},  // Sunset
		{color.RGBA{R: 250, G: 210, B: 120, A: 255}, 60}, // Haze
		{color.RGBA{R: 40, G: 110, B: 60, A: 255}, 100},  // Hills
	}

	y := 0
	for _, s := range stripes {
		for end := y + s.height; y < end; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, s.c)
			}
		}
	}
	for start := y; y < height; y++ {
		v := uint8(255 * (y - start) / (height - start))
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: v, G: v, B: 255 - v, A: 255})
		}
	}

	f, err := os.Create("testdata/test_image.png")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
}
