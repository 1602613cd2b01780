package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/colourbands/internal/bandfile"
	"github.com/jmylchreest/colourbands/internal/bands"
	"github.com/jmylchreest/colourbands/internal/config"
	"github.com/jmylchreest/colourbands/internal/image"
)

// defaultRenderOutput is where a single render is written when --output is
// not given.
const defaultRenderOutput = "color-bands.png"

// renderedSuffix is appended to each source name in directory mode.
const renderedSuffix = "-bands.png"

type renderOptions struct {
	output    string
	bandsFile string
	saveBands string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [image|directory]",
		Short: "Render an image's colour bands as a new image",
		Long: `Render the colour bands of an image as full-width solid stripes.

Band heights are scaled proportionally to the output height. With no
--width the output is as wide as the source (at most 1920 pixels); with no
--height it keeps the source aspect ratio.

Given a directory, every supported image in it is rendered to
<name>-bands.png inside the --output directory (default: the current
directory), using up to --jobs workers. Images sharing a name, such as
a.png and a.webp, keep their extension: a.png-bands.png, a.webp-bands.png.

Given --bands instead of an image, a saved band list is rendered. Its width
defaults to 1920 and its height to the band list's total height.

Examples:
  # Render to color-bands.png at the source size
  colourbands render wallpaper.jpg

  # Render a 1920x1080 image with broader bands
  colourbands render -t 60 -W 1920 -H 1080 -o bands.png wallpaper.jpg

  # Render a whole directory with four workers
  colourbands render -j 4 -o rendered/ ~/Pictures/wallpapers

  # Extract once, then render the same bands at another size
  colourbands render --save-bands bands.yaml wallpaper.jpg
  colourbands render --bands bands.yaml -W 400 -H 400 -o small.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := opts.output
			if !cmd.Flags().Changed("output") {
				output = ""
			}

			switch {
			case opts.bandsFile != "" && len(args) > 0:
				return errors.New("--bands cannot be combined with an image argument")
			case opts.bandsFile != "":
				if opts.saveBands != "" {
					return errors.New("--save-bands cannot be combined with --bands")
				}
				return a.renderBandsFile(opts.bandsFile, orDefault(output, defaultRenderOutput))
			case len(args) == 0:
				return errors.New("an image, a directory or --bands is required")
			}

			source := args[0]
			if isDirectory(source) {
				if opts.saveBands != "" {
					return errors.New("--save-bands is not supported when rendering a directory")
				}
				return a.renderDirectory(cmd.Context(), source, orDefault(output, "."))
			}
			return a.renderImage(cmd.Context(), source, orDefault(output, defaultRenderOutput), opts.saveBands)
		},
	}

	addBandFlags(cmd)
	cmd.Flags().IntP("width", "W", 0, "output width in pixels (0 = derive from the source)")
	cmd.Flags().IntP("height", "H", 0, "output height in pixels (0 = derive from the source)")
	cmd.Flags().IntP("jobs", "j", config.Default().Jobs, "images rendered concurrently in directory mode")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultRenderOutput, "output image, or output directory when rendering a directory")
	cmd.Flags().StringVar(&opts.bandsFile, "bands", "", "render a saved band list (hex, json or yaml) instead of an image")
	cmd.Flags().StringVar(&opts.saveBands, "save-bands", "", "also write the extracted band list to this file")

	return cmd
}

// renderImage extracts and renders one image, optionally saving its bands.
func (a *app) renderImage(ctx context.Context, source, output, saveBands string) error {
	// Local headers give the output size before the full decode.
	if !image.IsURL(source) {
		if w, h, err := image.GetImageDimensions(source); err == nil {
			if err := config.CheckOutputSize(a.cfg.OutputSize(w, h)); err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
		}
	}

	list, buf, err := a.extractBands(ctx, source)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("%w: %s has no rows to render", bands.ErrInvalidInput, source)
	}

	width, height := a.cfg.OutputSize(buf.Width, buf.Height)
	if err := a.writeRender(list, width, height, output); err != nil {
		return err
	}

	if saveBands != "" {
		if err := writeBandFile(list, saveBands); err != nil {
			return err
		}
		a.logger.Info("saved bands", "path", saveBands, "bands", len(list))
	}
	return nil
}

// renderBandsFile renders a band list previously written by extract or
// --save-bands.
func (a *app) renderBandsFile(path, output string) error {
	list, err := readBandFile(path)
	if err != nil {
		return err
	}

	width := orDefaultInt(a.cfg.Width, config.DefaultMaxOutputWidth)
	height := orDefaultInt(a.cfg.Height, bands.TotalHeight(list))
	a.logger.Debug("loaded band file", "path", path, "bands", len(list))

	return a.writeRender(list, width, height, output)
}

// renderDirectory renders every image in dir into outDir, cfg.Jobs at a time.
// The first failure cancels the remaining work.
func (a *app) renderDirectory(ctx context.Context, dir, outDir string) error {
	files, err := image.ScanDirectoryForImages(dir)
	if err != nil {
		return err
	}
	names, err := renderedNames(files)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	a.logger.Info("rendering directory", "path", dir, "images", len(files), "jobs", a.cfg.Jobs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			output := filepath.Join(outDir, names[i])
			if err := a.renderImage(ctx, file, output, ""); err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(file), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *app) writeRender(list []bands.Band, width, height int, output string) error {
	if err := config.CheckOutputSize(width, height); err != nil {
		return err
	}
	img, err := bands.Render(list, width, height)
	if err != nil {
		return fmt.Errorf("failed to render bands: %w", err)
	}
	if err := image.Save(img, output); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	a.logger.Info("rendered bands", "path", output, "bands", len(list), "width", width, "height", height)
	return nil
}

func readBandFile(path string) ([]bands.Band, error) {
	format, err := bandfile.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path) // #nosec G304 - User-specified band file
	if err != nil {
		return nil, fmt.Errorf("failed to open band file: %w", err)
	}
	defer f.Close()

	list, err := bandfile.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read band file %s: %w", path, err)
	}
	return list, nil
}

func writeBandFile(list []bands.Band, path string) error {
	format, err := bandfile.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create band file: %w", err)
	}

	encodeErr := bandfile.Encode(f, list, format)
	closeErr := f.Close()
	if encodeErr != nil {
		return fmt.Errorf("failed to write band file: %w", encodeErr)
	}
	return closeErr
}

// renderedNames maps each source image to its directory-mode output name,
// index for index. Names drop the source extension unless another source
// shares the same stem, as a.png and a.webp do. Any remaining clash is an
// error, since two workers would write the same file.
func renderedNames(sources []string) ([]string, error) {
	stems := make(map[string]int, len(sources))
	for _, src := range sources {
		stems[stem(src)]++
	}

	names := make([]string, len(sources))
	owners := make(map[string]string, len(sources))
	for i, src := range sources {
		name := stem(src) + renderedSuffix
		if stems[stem(src)] > 1 {
			name = filepath.Base(src) + renderedSuffix
		}
		if prev, ok := owners[name]; ok {
			return nil, fmt.Errorf("%s and %s would both be rendered to %s",
				filepath.Base(prev), filepath.Base(src), name)
		}
		owners[name] = src
		names[i] = name
	}
	return names, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isDirectory(path string) bool {
	if image.IsURL(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
