package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/colourbands/internal/bandfile"
)

// formatTable is the default human readable output; every other format is
// a band file format.
const formatTable = "table"

// outputFormat is a pflag.Value restricted to the supported output formats.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Type() string { return "format" }

// Set validates and stores a format name.
func (f *outputFormat) Set(s string) error {
	s = strings.ToLower(s)
	if s == formatTable {
		*f = outputFormat(s)
		return nil
	}
	parsed, err := bandfile.ParseFormat(s)
	if err != nil {
		return fmt.Errorf("unsupported format: %s (supported: %s)", s, strings.Join(outputFormatNames(), ", "))
	}
	*f = outputFormat(parsed)
	return nil
}

// bandFormat returns the band file format, or false for the table format.
func (f outputFormat) bandFormat() (bandfile.Format, bool) {
	if f == formatTable {
		return "", false
	}
	return bandfile.Format(f), true
}

func outputFormatNames() []string {
	names := []string{formatTable}
	for _, f := range bandfile.Formats() {
		names = append(names, string(f))
	}
	return names
}
