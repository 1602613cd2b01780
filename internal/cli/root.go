// Package cli provides the command-line interface for colourbands.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/colourbands/internal/colour"
	"github.com/jmylchreest/colourbands/internal/config"
	"github.com/jmylchreest/colourbands/internal/image"
	"github.com/jmylchreest/colourbands/internal/logging"
	"github.com/jmylchreest/colourbands/internal/util/imagecache"
	"github.com/jmylchreest/colourbands/internal/version"
)

// app carries state shared by every command once flags are parsed.
type app struct {
	verbose    bool
	quiet      bool
	logJSON    bool
	noColour   bool
	configPath string

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the colourbands command tree. Each call returns an
// independent tree, so tests can execute commands repeatedly.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: logging.Discard(),
	}

	rootCmd := &cobra.Command{
		Use:   "colourbands",
		Short: "Turn images into stacks of solid colour bands",
		Long: `colourbands reduces an image to a vertical stack of solid-colour horizontal
bands. Each row of the image is averaged to one colour, and consecutive rows
of similar colour are merged into a single band.

The band list can be printed, saved and re-rendered at any resolution.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.BoolVar(&a.logJSON, "log-json", false, "write log lines as JSON")
	flags.BoolVar(&a.noColour, "no-colour", false, "disable ANSI colour in previews and logs")
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file (env: "+config.EnvConfig+")")
	flags.Bool("cache", false, "cache remote images on disk")
	flags.String("cache-dir", "", "directory for cached remote images")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// setup builds the logger and resolves configuration in precedence order:
// defaults, config file, environment, then flags set on the command line.
func (a *app) setup(cmd *cobra.Command) error {
	colour.DisableColourOutput = a.noColour
	a.logger = logging.New(logging.Options{
		Output:   cmd.ErrOrStderr(),
		Verbose:  a.verbose,
		Quiet:    a.quiet,
		JSON:     a.logJSON,
		NoColour: a.noColour,
	})

	cfg := config.Default()

	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
		a.logger.Debug("loaded config file", "path", path)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("invalid environment configuration: %w", err)
	}
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	return nil
}

// applyFlags copies every flag the user set explicitly onto cfg.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "threshold":
			cfg.Threshold, err = fs.GetFloat64(f.Name)
		case "min-height":
			cfg.MinHeight, err = fs.GetInt(f.Name)
		case "width":
			cfg.Width, err = fs.GetInt(f.Name)
		case "height":
			cfg.Height, err = fs.GetInt(f.Name)
		case "jobs":
			cfg.Jobs, err = fs.GetInt(f.Name)
		case "cache":
			cfg.Cache, err = fs.GetBool(f.Name)
		case "cache-dir":
			cfg.CacheDir, err = fs.GetString(f.Name)
		}
	})
	return err
}

// loader returns an image loader honouring the cache settings.
func (a *app) loader() image.Loader {
	l := image.NewSmartLoader()
	l.Cache = a.cfg.Cache
	l.CacheOptions = imagecache.CacheOptions{CacheDir: a.cfg.CacheDir}
	return l
}

// addBandFlags registers the extraction flags shared by extract and render.
func addBandFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("threshold", "t", config.Default().Threshold,
		"colour distance that starts a new band (lower = more bands, typically 5-100)")
	cmd.Flags().IntP("min-height", "m", config.Default().MinHeight,
		"minimum rows in a band before it may close (typically 1-20)")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
