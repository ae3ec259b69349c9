package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rewired-gh/linkedlens/internal/config"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/output"
)

var (
	cfgFile string
	verbose bool
	v       = viper.New()
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linkedlens",
	Short: "Activity insights from a LinkedIn data export",
	Long: `linkedlens reads the CSV files of a LinkedIn data export and reports on
your interactions, network and career: monthly trends, peaks, rhythms,
saved jobs, positions and connections, with short commentary.

Example usage:
  linkedlens files                    # Check which export files are present
  linkedlens kinds                    # List available analyses
  linkedlens analyze                  # Run every analysis
  linkedlens analyze monthly heatmap  # Run selected analyses
  linkedlens analyze --json --yes     # Machine-readable output`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: defaults and LINKEDLENS_* environment)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringP("data-dir", "d", "", "directory holding the export CSV files")
	pf.String("timezone", "", "location for timestamps without an offset")
	pf.StringP("lang", "l", "", "language for dates and commentary (en, fr)")
	pf.String("color", "", "color output: auto, always or never")
	pf.BoolP("quiet", "q", false, "only print errors")

	// Bind flags to viper
	_ = v.BindPFlag("data.dir", pf.Lookup("data-dir"))
	_ = v.BindPFlag("data.timezone", pf.Lookup("timezone"))
	_ = v.BindPFlag("locale.language", pf.Lookup("lang"))
	_ = v.BindPFlag("output.color", pf.Lookup("color"))
	_ = v.BindPFlag("output.quiet", pf.Lookup("quiet"))
}

// initConfig reads the config file, environment and flags, then sets up logging.
func initConfig() error {
	var err error

	cfg, err = config.LoadWith(v, cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:    "cannot load configuration",
			Detail:     err.Error(),
			Suggestion: "Check the --config path and the file syntax",
			ExitCode:   output.ExitConfigError,
		}
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return &output.CLIError{
			Summary:  "invalid configuration",
			Detail:   err.Error(),
			ExitCode: output.ExitConfigError,
		}
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("Configuration loaded: data.dir=%s timezone=%s language=%s kinds=%v",
		cfg.Data.Dir, cfg.Data.Timezone, cfg.Locale.Language, cfg.Analysis.Kinds)
	return nil
}

// newPrinter builds a printer on the command's streams.
func newPrinter(cmd *cobra.Command) *output.Printer {
	mode, err := output.ParseColorMode(cfg.Output.Color)
	if err != nil {
		mode = output.ColorAuto
	}
	return output.NewPrinter(output.PrinterOptions{
		ColorMode: mode,
		Quiet:     cfg.Output.Quiet,
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
	})
}
