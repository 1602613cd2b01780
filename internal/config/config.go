// Package config holds colourbands settings and resolves them from
// defaults, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/colourbands/internal/bands"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig    = "COLOURBANDS_CONFIG"
	EnvThreshold = "COLOURBANDS_THRESHOLD"
	EnvMinHeight = "COLOURBANDS_MIN_HEIGHT"
	EnvWidth     = "COLOURBANDS_WIDTH"
	EnvHeight    = "COLOURBANDS_HEIGHT"
	EnvJobs      = "COLOURBANDS_JOBS"
	EnvCache     = "COLOURBANDS_CACHE"
	EnvCacheDir  = "COLOURBANDS_CACHE_DIR"
)

// DefaultMaxOutputWidth caps the derived output width when none is given.
const DefaultMaxOutputWidth = 1920

// Limits on rendered images. MaxOutputPixels keeps a single RGBA render
// under 256 MiB.
const (
	MaxOutputDimension = 16384
	MaxOutputPixels    = 1 << 26
)

// Config is the complete set of user settings.
type Config struct {
	// Extraction settings.
	Threshold float64 `yaml:"threshold"`
	MinHeight int     `yaml:"min_height"`

	// Render size; zero derives the size from the source image.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Jobs bounds how many images are processed at once.
	Jobs int `yaml:"jobs"`

	// Remote image cache.
	Cache    bool   `yaml:"cache"`
	CacheDir string `yaml:"cache_dir"`
}

// Default returns the default configuration.
func Default() Config {
	opts := bands.DefaultOptions()
	return Config{
		Threshold: opts.ColourThreshold,
		MinHeight: opts.MinBandHeight,
		Jobs:      runtime.NumCPU(),
	}
}

// BandOptions returns the extraction options described by the config.
func (c Config) BandOptions() bands.Options {
	return bands.Options{
		ColourThreshold: c.Threshold,
		MinBandHeight:   c.MinHeight,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if err := c.BandOptions().Validate(); err != nil {
		return err
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if c.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", c.Height)
	}
	if c.Width > MaxOutputDimension || c.Height > MaxOutputDimension {
		return fmt.Errorf("width and height must not exceed %d, got %dx%d", MaxOutputDimension, c.Width, c.Height)
	}
	if c.Width > 0 && c.Height > 0 {
		if err := CheckOutputSize(c.Width, c.Height); err != nil {
			return err
		}
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Write saves c as YAML.
func (c Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644) // #nosec G306 - Config is not secret
}

// ApplyEnv overlays values from the environment onto c. Every malformed
// variable is reported.
func (c *Config) ApplyEnv() error {
	var errs []error

	if v, ok := os.LookupEnv(EnvThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvThreshold, err))
		} else {
			c.Threshold = f
		}
	}
	for _, iv := range []struct {
		name string
		dst  *int
	}{
		{EnvMinHeight, &c.MinHeight},
		{EnvWidth, &c.Width},
		{EnvHeight, &c.Height},
		{EnvJobs, &c.Jobs},
	} {
		v, ok := os.LookupEnv(iv.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", iv.name, err))
			continue
		}
		*iv.dst = n
	}
	if v, ok := os.LookupEnv(EnvCache); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCache, err))
		} else {
			c.Cache = b
		}
	}
	if v, ok := os.LookupEnv(EnvCacheDir); ok {
		c.CacheDir = v
	}

	return errors.Join(errs...)
}

// CheckOutputSize reports whether a render of width x height is allowed.
func CheckOutputSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("output size must be positive, got %dx%d", width, height)
	}
	if width > MaxOutputDimension || height > MaxOutputDimension {
		return fmt.Errorf("output size %dx%d exceeds the %d pixel limit per side", width, height, MaxOutputDimension)
	}
	if width*height > MaxOutputPixels {
		return fmt.Errorf("output size %dx%d exceeds the %d pixel limit", width, height, MaxOutputPixels)
	}
	return nil
}

// OutputSize resolves the render size for a source image of srcWidth x
// srcHeight. A zero width becomes min(srcWidth, DefaultMaxOutputWidth); a
// zero height keeps the source aspect ratio.
func (c Config) OutputSize(srcWidth, srcHeight int) (width, height int) {
	width, height = c.Width, c.Height
	if width == 0 {
		width = min(srcWidth, DefaultMaxOutputWidth)
		if height != 0 && srcHeight > 0 {
			width = max(1, (srcWidth*height+srcHeight/2)/srcHeight)
		}
	}
	if height == 0 && srcWidth > 0 {
		height = max(1, (srcHeight*width+srcWidth/2)/srcWidth)
	}
	return width, height
}
