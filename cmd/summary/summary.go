package summary

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	internalsarif "github.com/scan-io-git/sarif-reporter/internal/sarif"
	"github.com/scan-io-git/sarif-reporter/pkg/shared"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/config"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/errors"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/logger"
)

// RunOptions holds the arguments for the summary command.
type RunOptions struct {
	Input          string `json:"input,omitempty"`
	Verbose        bool   `json:"verbose,omitempty"`
	NoSuppressions bool   `json:"no_suppressions,omitempty"`
}

var (
	AppConfig           *config.Config
	summaryOptions      RunOptions
	exampleSummaryUsage = `  # Print the result counts of a SARIF report
  sarif-reporter summary --input spotbugs.sarif

  # List every result, most severe first, ignoring suppressed ones
  sarif-reporter summary -i spotbugs.sarif --verbose --no-suppressions`
)

// SummaryCmd represents the summary command.
var SummaryCmd = &cobra.Command{
	Use:                   "summary --input/-i PATH [--verbose/-v] [--no-suppressions]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSummaryUsage,
	Short:                 "Summarise the results of a SARIF report",
	RunE:                  runSummaryCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runSummaryCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "summary")

	if err := validateSummaryArgs(&summaryOptions, args); err != nil {
		lg.Error("invalid summary arguments", "error", err)
		return errors.NewCommandError(summaryOptions, nil, fmt.Errorf("invalid summary arguments: %w", err), 1)
	}

	report, err := internalsarif.ReadReport(summaryOptions.Input, lg, summaryOptions.NoSuppressions)
	if err != nil {
		lg.Error("failed to read SARIF report", "error", err)
		return errors.NewCommandError(summaryOptions, nil, err, 2)
	}

	counts, err := printSummary(cmd.OutOrStdout(), report, summaryOptions.Verbose)
	if err != nil {
		return errors.NewCommandError(summaryOptions, nil, err, 2)
	}
	lg.Debug("summary printed", "total", counts["total"])
	return nil
}

// printSummary writes the tool, the result counts per level and, when
// verbose, one line per result ordered by level.
func printSummary(w io.Writer, report *internalsarif.Report, verbose bool) (map[string]int, error) {
	report.EnrichResultsLevelProperty()

	tool, err := report.ExtractToolNameAndVersion()
	if err != nil {
		return nil, err
	}
	version := "unknown"
	if tool.Version != nil {
		version = *tool.Version
	}
	fmt.Fprintf(w, "Tool: %s %s\n", tool.Name, version)

	counts := report.CollectSeverityInfo()
	fmt.Fprintf(w, "Results: %d (error: %d, warning: %d, note: %d, none: %d)\n",
		counts["total"], counts["error"], counts["warning"], counts["note"], counts["none"])

	if verbose {
		report.SortResultsByLevel()
		for _, s := range report.Summaries() {
			location := s.Location
			if location == "" {
				location = "-"
			}
			fmt.Fprintf(w, "[%s] %s %s: %s\n", s.Level, s.RuleID, location, s.Message)
		}
	}
	return counts, nil
}

// Initialize flags for the summary command.
func init() {
	SummaryCmd.Flags().BoolP("help", "h", false, "Show help for the summary command.")
	SummaryCmd.Flags().StringVarP(&summaryOptions.Input, "input", "i", "", "Path to the SARIF report.")
	SummaryCmd.Flags().BoolVarP(&summaryOptions.Verbose, "verbose", "v", false, "List every result.")
	SummaryCmd.Flags().BoolVar(&summaryOptions.NoSuppressions, "no-suppressions", false, "Drop results that carry suppressions.")
}
