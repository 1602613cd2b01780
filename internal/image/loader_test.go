package image

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jmylchreest/colourbands/internal/util/imagecache"
)

// testImage returns a small two-colour image.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	for y := range 6 {
		c := color.RGBA{R: 200, G: 10, B: 10, A: 255}
		if y >= 3 {
			c = color.RGBA{R: 10, G: 10, B: 200, A: 255}
		}
		for x := range 4 {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, testImage()); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")
	writePNG(t, path)

	loader := NewFileLoader()
	img, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 6 {
		t.Errorf("Load() bounds = %v, want 4x6", b)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(context.Background(), tt.path); err == nil {
				t.Errorf("Load(%q) expected an error", tt.path)
			}
		})
	}
}

func TestFileLoaderRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	if err := os.WriteFile(path, []byte("dummy image data"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := NewFileLoader().Load(context.Background(), path); err == nil {
		t.Error("Load() of a non-image expected an error")
	}
	if err := ValidateImagePath(path); err == nil {
		t.Error("ValidateImagePath() of a non-image expected an error")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.png")
	writePNG(t, path)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "image file", path: path},
		{name: "directory", path: dir},
		{name: "url", path: "https://example.com/wall.jpg"},
		{name: "empty", path: "", wantErr: true},
		{name: "missing", path: filepath.Join(dir, "nope.jpg"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"))
	writePNG(t, filepath.Join(dir, "a.PNG"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ScanDirectoryForImages(dir)
	if err != nil {
		t.Fatalf("ScanDirectoryForImages() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.PNG"), filepath.Join(dir, "b.png")}
	if len(got) != len(want) {
		t.Fatalf("ScanDirectoryForImages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i], want[i])
		}
	}

	if _, err := ScanDirectoryForImages(t.TempDir()); err == nil {
		t.Error("ScanDirectoryForImages() of an empty directory expected an error")
	}
}

func TestGetImageDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dims.png")
	writePNG(t, path)

	w, h, err := GetImageDimensions(path)
	if err != nil {
		t.Fatalf("GetImageDimensions() error = %v", err)
	}
	if w != 4 || h != 6 {
		t.Errorf("GetImageDimensions() = %dx%d, want 4x6", w, h)
	}
}

func TestSmartLoaderURL(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/wall.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	t.Run("direct", func(t *testing.T) {
		loader := NewSmartLoader()
		img, err := loader.Load(context.Background(), server.URL+"/wall.png")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 6 {
			t.Errorf("Load() bounds = %v, want 4x6", b)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := NewSmartLoader().Load(context.Background(), server.URL+"/missing.png"); err == nil {
			t.Error("Load() expected an error for a 404")
		}
	})

	t.Run("cached", func(t *testing.T) {
		cacheDir := t.TempDir()
		loader := NewSmartLoader()
		loader.Cache = true
		loader.CacheOptions = imagecache.CacheOptions{CacheDir: cacheDir}

		before := requests.Load()
		for range 2 {
			if _, err := loader.Load(context.Background(), server.URL+"/wall.png"); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
		}
		if got := requests.Load() - before; got != 1 {
			t.Errorf("server received %d requests, want 1 (second load cached)", got)
		}

		entries, err := os.ReadDir(cacheDir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("cache holds %d files, want 1", len(entries))
		}
	})
}
