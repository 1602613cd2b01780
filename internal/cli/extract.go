package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourbands/internal/bandfile"
	"github.com/jmylchreest/colourbands/internal/bands"
	"github.com/jmylchreest/colourbands/internal/colour"
	"github.com/jmylchreest/colourbands/internal/image"
)

// previewWidth is the swatch width, in cells, of the --preview column.
const previewWidth = 9

type extractOptions struct {
	format  outputFormat
	output  string
	preview bool
	stats   bool
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{format: formatTable}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract colour bands from an image",
		Long: `Extract the colour bands of an image.

Every row of the image is averaged to one colour. Consecutive rows whose
colour stays within --threshold of the running band average are merged into
one band, as long as the band is at least --min-height rows tall.

The image may be a local file or an http(s) URL.
Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Print the bands as a table
  colourbands extract wallpaper.jpg

  # Fewer, broader bands with terminal swatches
  colourbands extract --threshold 60 --preview wallpaper.png

  # Save the band list for later rendering
  colourbands extract -f json -o bands.json wallpaper.jpg

  # One "#rrggbb height startY" line per band plus a summary
  colourbands extract -f hex --stats wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], opts)
		},
	}

	addBandFlags(cmd)
	cmd.Flags().VarP(&opts.format, "format", "f", "output format ("+strings.Join(outputFormatNames(), ", ")+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour swatches in the table (terminal only)")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "include a summary of band heights")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, path string, opts *extractOptions) error {
	list, _, err := a.extractBands(cmd.Context(), path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if format, ok := opts.format.bandFormat(); ok {
		doc := bandfile.NewDocument(list, opts.stats)
		if err := bandfile.EncodeDocument(&buf, doc, format); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	} else {
		preview := opts.preview && opts.output == "" && isTerminal(cmd.OutOrStdout())
		if opts.preview && !preview {
			a.logger.Debug("colour preview disabled, output is not a terminal")
		}
		buf.WriteString(formatBandTable(list, preview))
		if opts.stats {
			fmt.Fprintf(&buf, "\n%s\n", bands.Summarise(list))
		}
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info("wrote bands", "path", opts.output, "bands", len(list))
	return nil
}

// extractBands loads the image at path and extracts its bands using the
// resolved configuration. It also returns the image so callers can size
// renders from it.
func (a *app) extractBands(ctx context.Context, path string) ([]bands.Band, *bands.PixelBuffer, error) {
	if err := image.ValidateImagePath(path); err != nil {
		return nil, nil, fmt.Errorf("invalid image path: %w", err)
	}

	a.logger.Debug("loading image", "path", path)
	img, err := a.loader().Load(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load image: %w", err)
	}

	buf := bands.FromImage(img)
	a.logger.Debug("image loaded", "path", path, "width", buf.Width, "height", buf.Height)

	list, err := bands.Extract(buf, a.cfg.BandOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract bands: %w", err)
	}
	a.logger.Debug("extracted bands", "path", path, "bands", len(list),
		"threshold", a.cfg.Threshold, "min_height", a.cfg.MinHeight)

	return list, buf, nil
}

// formatBandTable lays a band list out as a table, optionally with a
// swatch column.
func formatBandTable(list []bands.Band, preview bool) string {
	headers := []string{"#", "Hex", "RGB", "Height", "Start"}
	if preview {
		headers = append(headers, "Preview")
	}

	t := NewTable(headers)
	t.SetAlignment(0, AlignRight)
	t.SetAlignment(3, AlignRight)
	t.SetAlignment(4, AlignRight)

	for i, b := range list {
		row := []string{
			strconv.Itoa(i + 1),
			b.Colour.Hex(),
			b.Colour.String(),
			strconv.Itoa(b.Height),
			strconv.Itoa(b.StartY),
		}
		if preview {
			row = append(row, colour.ColourPreviewWithText(b.Colour, b.Colour.Hex(), previewWidth))
		}
		t.AddRow(row)
	}

	return t.Render()
}

// isTerminal reports whether w is a file attached to a colour-capable terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && colour.SupportsANSIColours(f)
}
