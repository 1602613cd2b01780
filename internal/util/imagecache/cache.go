// Package imagecache downloads remote images into an on-disk cache so
// repeated runs against the same URL do not fetch it again.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/colourbands/internal/util/http"
)

// CacheOptions configures image caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where images will be cached.
	// If empty, defaults to DefaultCacheDir.
	CacheDir string

	// AllowOverwrite forces a fresh download even when a cached copy exists.
	AllowOverwrite bool
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "colourbands", "images"), nil
	}
	return filepath.Join(cacheDir, "colourbands", "images"), nil
}

// Filename returns the cache file name for a URL: a hash of the URL plus
// the extension of its path, so decoders can still sniff by name.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	// Only the URL path carries a meaningful extension.
	p := url
	if idx := strings.Index(p, "://"); idx != -1 {
		p = p[idx+3:]
	}
	if idx := strings.IndexAny(p, "?#"); idx != -1 {
		p = p[:idx]
	}
	ext := ""
	if idx := strings.IndexByte(p, '/'); idx != -1 {
		ext = strings.ToLower(path.Ext(p[idx:]))
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}

	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// DownloadAndCache downloads a remote image and saves it to the cache directory.
// Returns the local file path where the image was saved. The file is written
// under a temporary name and renamed, so concurrent callers never observe a
// partial image.
func DownloadAndCache(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, Filename(url))
	if !opts.AllowOverwrite {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, httputil.FetchOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	tmp, err := os.CreateTemp(cacheDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary cache file: %w", err)
	}
	// CreateTemp uses 0600; cached images are readable like any other download.
	_, writeErr := tmp.Write(data)
	if writeErr == nil {
		writeErr = tmp.Chmod(0o644) // #nosec G302 - Cached images are not secret
	}
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmp.Name(), cachedPath)
	}
	if writeErr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", writeErr)
	}

	return cachedPath, nil
}
