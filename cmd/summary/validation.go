package summary

import (
	"fmt"

	"github.com/scan-io-git/sarif-reporter/pkg/shared/files"
)

// validateSummaryArgs validates the arguments provided to the summary command.
func validateSummaryArgs(opts *RunOptions, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("only one SARIF report can be summarised at a time")
	}
	if len(args) == 1 {
		if opts.Input != "" {
			return fmt.Errorf("you cannot use an 'input' flag and a path argument at the same time")
		}
		opts.Input = args[0]
	}
	if opts.Input == "" {
		return fmt.Errorf("'input' flag must be specified")
	}

	input, err := files.ExpandPath(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to expand input path: %w", err)
	}
	if err := files.ValidatePath(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	opts.Input = input
	return nil
}
