package bands

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/jmylchreest/colourbands/internal/colour"
)

func TestRenderScalesBands(t *testing.T) {
	bands := []Band{
		{Colour: colour.RGB{R: 255}, Height: 10, StartY: 0},
		{Colour: colour.RGB{B: 255}, Height: 30, StartY: 10},
	}

	img, err := Render(bands, 7, 400)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 400 {
		t.Fatalf("Render() bounds = %v, want 7x400", b)
	}

	for y := range 400 {
		want := color.RGBA{R: 255, A: 255}
		if y >= 100 {
			want = color.RGBA{B: 255, A: 255}
		}
		for x := range 7 {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestLayoutSpans(t *testing.T) {
	bands := []Band{
		{Height: 10, StartY: 0},
		{Height: 30, StartY: 10},
	}

	spans, err := Layout(bands, 400)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	want := []struct{ top, bottom int }{{0, 100}, {100, 400}}
	for i, w := range want {
		if spans[i].Top != w.top || spans[i].Bottom != w.bottom {
			t.Errorf("span %d = [%d, %d), want [%d, %d)", i, spans[i].Top, spans[i].Bottom, w.top, w.bottom)
		}
	}
	if spans[1].Y != 100 || spans[1].Height != 300 {
		t.Errorf("span 1 placement = %v+%v, want 100+300", spans[1].Y, spans[1].Height)
	}
}

func TestLayoutFractionalScale(t *testing.T) {
	// Seven bands of three rows each into 100 target rows: 100/7 per band.
	bands := make([]Band, 7)
	for i := range bands {
		bands[i] = Band{Height: 3, StartY: i * 3}
	}

	for _, target := range []int{1, 2, 7, 100, 333, 1080} {
		spans, err := Layout(bands, target)
		if err != nil {
			t.Fatalf("Layout() error = %v", err)
		}

		sum := 0.0
		next := 0
		for i, s := range spans {
			sum += s.Height
			if s.Top != next {
				t.Errorf("target %d: span %d starts at %d, want %d", target, i, s.Top, next)
			}
			if s.Bottom < s.Top || s.Bottom > target {
				t.Errorf("target %d: span %d = [%d, %d) out of bounds", target, i, s.Top, s.Bottom)
			}
			next = s.Bottom
		}
		if next != target {
			t.Errorf("target %d: spans end at %d", target, next)
		}
		if math.Abs(sum-float64(target)) > 1 {
			t.Errorf("target %d: scaled heights sum to %v", target, sum)
		}
	}
}

func TestRenderFillsEveryRow(t *testing.T) {
	bands := []Band{
		{Colour: colour.RGB{R: 1, G: 2, B: 3}, Height: 1, StartY: 0},
		{Colour: colour.RGB{R: 4, G: 5, B: 6}, Height: 1, StartY: 1},
		{Colour: colour.RGB{R: 7, G: 8, B: 9}, Height: 1, StartY: 2},
	}

	img, err := Render(bands, 3, 10)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for y := range 10 {
		if got := img.RGBAAt(0, y); got.A != 255 {
			t.Errorf("row %d was not painted: %v", y, got)
		}
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 10 {
		t.Errorf("Render() bounds = %v, want 3x10", img.Bounds())
	}
}

func TestRenderRoundTrip(t *testing.T) {
	// Rendering extracted bands at the source size reproduces the bands.
	buf := stripedBuffer(4, red, red, red, blue, blue, green, green, green, green)
	bands, err := Extract(buf, Options{ColourThreshold: 10, MinBandHeight: 1})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	img, err := Render(bands, 4, buf.Height)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	again, err := Extract(FromImage(img), Options{ColourThreshold: 10, MinBandHeight: 1})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(again) != len(bands) {
		t.Fatalf("round trip produced %d bands, want %d", len(again), len(bands))
	}
	for i := range bands {
		if again[i] != bands[i] {
			t.Errorf("band %d = %+v, want %+v", i, again[i], bands[i])
		}
	}
}

func TestRenderInvalidInput(t *testing.T) {
	valid := []Band{{Height: 5}}

	tests := []struct {
		name   string
		bands  []Band
		width  int
		height int
	}{
		{name: "no bands", bands: nil, width: 10, height: 10},
		{name: "zero total height", bands: []Band{{Height: 0}, {Height: 0}}, width: 10, height: 10},
		{name: "negative band height", bands: []Band{{Height: 5}, {Height: -1, StartY: 5}}, width: 10, height: 10},
		{name: "zero width", bands: valid, width: 0, height: 10},
		{name: "negative height", bands: valid, width: 10, height: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(tt.bands, tt.width, tt.height); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Render() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
