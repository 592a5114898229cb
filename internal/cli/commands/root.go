package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flute-go/reflection/internal/cli/config"
	"github.com/flute-go/reflection/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath   string
	snapshotPath string
	format       string
	noColor      bool
	verbose      bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "flute",
		Short: "Inspect reflection metadata declared on Go types",
		Long: color.CyanString(`Flute - reflection metadata for Go

Flute attaches annotations, tags and arbitrary metadata to Go types, their
fields, methods and method parameters. Programs export what they declared
as a snapshot file; this tool reads snapshots to list and explain them, or
serves them over HTTP for other tooling.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: ./flute.yml)")
	flags.StringVar(&opts.snapshotPath, "snapshot", "", "Snapshot file to read (overrides config)")
	flags.StringVar(&opts.format, "format", "", "Output format: table or json (overrides config)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.verbose, "verbose", false, "Show all details and debug logs")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the flute version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			for _, line := range [][2]string{
				{"Flute version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", goVer},
			} {
				titleColor.Fprint(out, line[0])
				valueColor.Fprintln(out, line[1])
			}
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if errors.As(err, &reported) {
			return err
		}
		ui.WriteError(rootCmd.ErrOrStderr(), ui.ErrorOptions{
			Problem: err.Error(),
			NoColor: color.NoColor,
		})
		return err
	}
	return nil
}

// reportedError has already been rendered on the command's error stream.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// settings loads the config file and applies flag overrides.
func (o *rootOptions) settings() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch root, rootErr := config.FindRoot(); {
	case o.configPath != "":
		cfg, err = config.LoadFile(o.configPath)
	case rootErr == nil:
		cfg, err = config.LoadDir(root)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if o.snapshotPath != "" {
		cfg.Snapshot.Path = o.snapshotPath
	}
	if o.format != "" {
		if o.format != "table" && o.format != "json" {
			return nil, fmt.Errorf("invalid format %q: must be table or json", o.format)
		}
		cfg.Output.Format = o.format
	}
	if o.noColor {
		cfg.Output.NoColor = true
	}
	return cfg, nil
}

// logger returns a development logger under --verbose and a production
// logger at the configured level otherwise.
func (o *rootOptions) logger(cfg *config.Config) (*zap.Logger, error) {
	if o.verbose {
		return zap.NewDevelopment()
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
