package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/sarif-reporter/cmd/version"
	"github.com/scan-io-git/sarif-reporter/internal/bugs"
	"github.com/scan-io-git/sarif-reporter/internal/locale"
	"github.com/scan-io-git/sarif-reporter/internal/report"
	"github.com/scan-io-git/sarif-reporter/internal/source"
	"github.com/scan-io-git/sarif-reporter/pkg/shared"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/config"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/errors"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/files"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/logger"
)

const defaultReportName = "spotbugs.sarif"

// RunOptions holds the arguments for the convert command.
type RunOptions struct {
	Input       string   `json:"input,omitempty"`
	Output      string   `json:"output,omitempty"`
	SourceDirs  []string `json:"source_dirs,omitempty"`
	Locale      string   `json:"locale,omitempty"`
	ToolVersion string   `json:"tool_version,omitempty"`
	Pretty      bool     `json:"pretty,omitempty"`
	ExitCode    bool     `json:"exit_code,omitempty"`
}

var (
	AppConfig           *config.Config
	convertOptions      RunOptions
	exampleConvertUsage = `  # Convert a bug collection and print the report to stdout
  sarif-reporter convert --input /path/to/bugs.json

  # Resolve source files and write an indented report into a directory
  sarif-reporter convert -i bugs.json -s src/main/java -s src/test/java --pretty -o build/reports/

  # Write a Japanese-language report and exit with the analysis exit code
  sarif-reporter convert bugs.json --locale ja_JP --exit-code -o spotbugs.sarif`
)

// ConvertCmd represents the convert command.
var ConvertCmd = &cobra.Command{
	Use:                   "convert {--input/-i PATH | PATH} [--output/-o PATH] [--source/-s DIR]... [--locale LOCALE] [--pretty] [--exit-code]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleConvertUsage,
	Short:                 "Convert a SpotBugs bug collection into a SARIF 2.1.0 report",
	RunE:                  runConvertCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runConvertCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "convert")

	applyConfigDefaults(&convertOptions, AppConfig, cmd.Flags().Changed("pretty"))
	if err := validateConvertArgs(&convertOptions, args); err != nil {
		lg.Error("invalid convert arguments", "error", err)
		return errors.NewCommandError(convertOptions, nil, fmt.Errorf("invalid convert arguments: %w", err), 1)
	}

	collection, err := bugs.LoadCollection(convertOptions.Input, lg)
	if err != nil {
		lg.Error("failed to load bug collection", "error", err)
		return errors.NewCommandError(convertOptions, nil, err, 2)
	}

	finder := source.NewFinder(convertOptions.SourceDirs, lg)
	reporter := report.NewReporter(collection, finder, report.Options{
		ToolVersion: convertOptions.ToolVersion,
		Language:    locale.Resolve(convertOptions.Locale),
		Pretty:      convertOptions.Pretty,
		Logger:      lg,
	})

	if err := reporter.Finish(outputOpener(cmd.OutOrStdout(), convertOptions.Output, lg)); err != nil {
		return errors.NewCommandError(convertOptions, nil, err, 2)
	}

	code := report.ExitCode(len(collection.Errors), len(collection.MissingClasses), len(collection.Bugs))
	lg.Info("SARIF report generated",
		"results", len(collection.Bugs),
		"errors", len(collection.Errors),
		"missing_classes", len(collection.MissingClasses),
		"exit_signal", report.SignalName(code))

	if convertOptions.ExitCode && code != 0 {
		return errors.NewCommandError(convertOptions, nil, fmt.Errorf("analysis finished with %s", report.SignalName(code)), code)
	}
	return nil
}

// applyConfigDefaults fills options that were not given on the command line
// from the report section of the config.
func applyConfigDefaults(opts *RunOptions, cfg *config.Config, prettyFlagSet bool) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	opts.Locale = config.SetThen(opts.Locale, cfg.Report.Locale)
	opts.SourceDirs = config.SetThen(opts.SourceDirs, cfg.Report.SourceDirs)
	opts.ToolVersion = config.SetThen(opts.ToolVersion, config.SetThen(cfg.Report.ToolVersion, version.CoreVersion))
	if !prettyFlagSet {
		opts.Pretty = config.GetBoolValue(cfg, "Report.Pretty", opts.Pretty)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// outputOpener returns the sink factory for the report. An empty path or "-"
// writes to stdout.
func outputOpener(stdout io.Writer, output string, lg hclog.Logger) func() (io.WriteCloser, error) {
	return func() (io.WriteCloser, error) {
		if output == "" || output == "-" {
			return nopCloser{stdout}, nil
		}
		path, folder, err := files.DetermineFileFullPath(output, defaultReportName)
		if err != nil {
			return nil, err
		}
		if err := files.CreateFolderIfNotExists(folder); err != nil {
			return nil, err
		}
		lg.Debug("writing SARIF report", "path", path)
		return os.Create(path)
	}
}

// Initialize flags for the convert command.
func init() {
	ConvertCmd.Flags().BoolP("help", "h", false, "Show help for the convert command.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Input, "input", "i", "", "Path to the bug collection JSON file.")
	ConvertCmd.Flags().StringVarP(&convertOptions.Output, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	ConvertCmd.Flags().StringArrayVarP(&convertOptions.SourceDirs, "source", "s", nil, "Source root used to resolve file locations. Can be repeated; earlier roots win.")
	ConvertCmd.Flags().StringVar(&convertOptions.Locale, "locale", "", "Report locale, e.g. en or ja_JP. Defaults to LC_ALL, LC_MESSAGES or LANG.")
	ConvertCmd.Flags().StringVar(&convertOptions.ToolVersion, "tool-version", "", "Driver version used when the bug collection does not name one.")
	ConvertCmd.Flags().BoolVar(&convertOptions.Pretty, "pretty", false, "Indent the JSON output.")
	ConvertCmd.Flags().BoolVar(&convertOptions.ExitCode, "exit-code", false, "Exit with the analysis exit code (1 bugs found, 2 missing classes, 4 errors, combined).")
}
