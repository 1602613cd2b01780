package image

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "out.png", want: FormatPNG},
		{path: "out.JPG", want: FormatJPEG},
		{path: "out.jpeg", want: FormatJPEG},
		{path: "out.gif", want: FormatGIF},
		{path: "out.bmp", want: FormatBMP},
		{path: "out.tif", want: FormatTIFF},
		{path: "out.webp", wantErr: true},
		{path: "out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Lossless formats reproduce the pixels exactly.
	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			src := testImage()
			if err := Save(src, path); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			img, err := NewFileLoader().Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			for y := range 6 {
				got := color.RGBAModel.Convert(img.At(0, y)).(color.RGBA)
				if want := src.RGBAAt(0, y); got != want {
					t.Errorf("pixel (0, %d) = %v, want %v", y, got, want)
				}
			}
		})
	}

	t.Run("jpeg", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.jpg")
		if err := Save(testImage(), path); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := ValidateImagePath(path); err != nil {
			t.Errorf("ValidateImagePath() error = %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if err := Save(testImage(), filepath.Join(t.TempDir(), "out.xyz")); err == nil {
			t.Error("Save() expected an error")
		}
	})
}
