// Package logging builds the hclog loggers used by the CLI.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options configures a logger.
type Options struct {
	// Name is attached to every line.
	Name string

	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer

	// Verbose enables debug output.
	Verbose bool

	// Quiet restricts output to errors. Verbose wins if both are set.
	Quiet bool

	// JSON switches to hclog's JSON line format.
	JSON bool

	// NoColour disables coloured level headers even on a terminal.
	NoColour bool
}

// Level resolves the hclog level implied by the options.
func (o Options) Level() hclog.Level {
	switch {
	case o.Verbose:
		return hclog.Debug
	case o.Quiet:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// Colour resolves the hclog colour mode implied by the options.
func (o Options) Colour() hclog.ColorOption {
	if o.NoColour {
		return hclog.ColorOff
	}
	return hclog.AutoColor
}

// New creates a logger from opts.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	name := opts.Name
	if name == "" {
		name = "colourbands"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Output:          out,
		Level:           opts.Level(),
		JSONFormat:      opts.JSON,
		DisableTime:     !opts.Verbose,
		Color:           opts.Colour(),
		ColorHeaderOnly: true,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
