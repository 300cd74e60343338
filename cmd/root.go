package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/sarif-reporter/cmd/convert"
	"github.com/scan-io-git/sarif-reporter/cmd/summary"
	"github.com/scan-io-git/sarif-reporter/cmd/version"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/config"
	sharederrors "github.com/scan-io-git/sarif-reporter/pkg/shared/errors"
)

// ConfigEnv names the config file when --config is not given.
const ConfigEnv = "SARIF_REPORTER_CONFIG"

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "sarif-reporter [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "sarif-reporter converts SpotBugs bug collections into SARIF 2.1.0 reports.",
		Long: `sarif-reporter converts the bug collection of a completed SpotBugs analysis
into a SARIF 2.1.0 report, and summarises existing SARIF reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the YAML config file (default $"+ConfigEnv+").")
	rootCmd.AddCommand(convert.ConvertCmd)
	rootCmd.AddCommand(summary.SummaryCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		var cmdErr *sharederrors.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() error {
	var err error

	if cfgFile == "" {
		cfgFile = os.Getenv(ConfigEnv)
	}
	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", cfgFile, err)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return err
	}

	convert.Init(AppConfig)
	summary.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
