// Package bandfile reads and writes band lists as JSON, YAML or plain text.
package bandfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/colourbands/internal/bands"
	"github.com/jmylchreest/colourbands/internal/colour"
)

// Format identifies a band list encoding.
type Format string

const (
	// FormatHex writes one "#rrggbb height startY" line per band.
	FormatHex Format = "hex"

	// FormatJSON writes a JSON document with a count and the band list.
	FormatJSON Format = "json"

	// FormatYAML writes the same document as FormatJSON in YAML.
	FormatYAML Format = "yaml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatHex, FormatJSON, FormatYAML}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatHex, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt", "text":
		return FormatHex, nil
	}
	return "", fmt.Errorf("unsupported format: %s (supported: %v)", s, Formats())
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer band file format from %q", path)
	}
	return ParseFormat(ext)
}

// Document is the JSON and YAML layout of a band list.
type Document struct {
	Count   int            `json:"count" yaml:"count"`
	Bands   []bands.Band   `json:"bands" yaml:"bands"`
	Summary *bands.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// NewDocument wraps a band list, optionally with its height summary.
func NewDocument(list []bands.Band, withSummary bool) Document {
	doc := Document{Count: len(list), Bands: nonNil(list)}
	if withSummary {
		s := bands.Summarise(list)
		doc.Summary = &s
	}
	return doc
}

// Encode writes bands to w in the given format.
func Encode(w io.Writer, list []bands.Band, format Format) error {
	return EncodeDocument(w, NewDocument(list, false), format)
}

// EncodeDocument writes doc to w in the given format. The hex format writes
// the summary, if any, as a trailing comment line.
func EncodeDocument(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatHex:
		for _, b := range doc.Bands {
			if _, err := fmt.Fprintf(w, "%s %d %d\n", b.Colour.Hex(), b.Height, b.StartY); err != nil {
				return err
			}
		}
		if doc.Summary != nil {
			if _, err := fmt.Fprintf(w, "// %s\n", doc.Summary); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func nonNil(list []bands.Band) []bands.Band {
	if list == nil {
		return []bands.Band{}
	}
	return list
}

// Decode reads a band list written by Encode and checks that it is
// contiguous.
func Decode(r io.Reader, format Format) ([]bands.Band, error) {
	var list []bands.Band

	switch format {
	case FormatJSON:
		var doc Document
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON band list: %w", err)
		}
		list = doc.Bands
	case FormatYAML:
		var doc Document
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML band list: %w", err)
		}
		list = doc.Bands
	case FormatHex:
		var err error
		if list, err = decodeHex(r); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if err := bands.Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeHex(r io.Reader) ([]bands.Band, error) {
	var list []bands.Band
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		// Skip blank lines and comments.
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected \"#rrggbb height startY\", got %q", line, text)
		}
		c, err := colour.ParseHex(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		height, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid height: %w", line, err)
		}
		startY, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid start row: %w", line, err)
		}
		list = append(list, bands.Band{Colour: c, Height: height, StartY: startY})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read band list: %w", err)
	}

	return list, nil
}
