package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/sarif-reporter/internal/report"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/config"
)

var AppConfig *config.Config

// Set at build time with -ldflags "-X ...".
var (
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
)

// Versions holds version information for the application.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
	SarifVersion  string `json:"sarif_version"`
}

var outputJSON bool

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// Current returns the version information of the running binary.
func Current() Versions {
	return Versions{
		Version:       CoreVersion,
		GolangVersion: GolangVersion,
		BuildTime:     BuildTime,
		SarifVersion:  report.Version,
	}
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version [--json]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersionInfo(cmd.OutOrStdout(), Current(), outputJSON)
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Print the version information as JSON.")
	return cmd
}

// printVersionInfo prints the version information for the application.
func printVersionInfo(w io.Writer, versions Versions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	}
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Version)
	fmt.Fprintf(w, "SARIF Version: %s\n", versions.SarifVersion)
	fmt.Fprintf(w, "Go Version: %s\n", versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.BuildTime)
	return nil
}
