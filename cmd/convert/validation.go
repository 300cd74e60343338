package convert

import (
	"fmt"
	"path/filepath"

	"github.com/scan-io-git/sarif-reporter/internal/locale"
	"github.com/scan-io-git/sarif-reporter/pkg/shared/files"
)

// validateConvertArgs validates the arguments provided to the convert command.
// A single positional argument is accepted as the input path.
func validateConvertArgs(opts *RunOptions, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("only one bug collection can be converted at a time, got %d paths", len(args))
	}
	if len(args) == 1 {
		if opts.Input != "" {
			return fmt.Errorf("you cannot use an 'input' flag and a path argument at the same time")
		}
		opts.Input = args[0]
	}
	if opts.Input == "" {
		return fmt.Errorf("either 'input' flag or a bug collection path must be specified")
	}

	input, err := files.ExpandPath(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to expand input path: %w", err)
	}
	if err := files.ValidatePath(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	opts.Input = input

	dirs := make([]string, 0, len(opts.SourceDirs))
	for _, dir := range opts.SourceDirs {
		expanded, err := files.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("failed to expand source directory %q: %w", dir, err)
		}
		if err := files.ValidateDir(expanded); err != nil {
			return fmt.Errorf("invalid source directory: %w", err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return fmt.Errorf("failed to resolve source directory %q: %w", dir, err)
		}
		dirs = append(dirs, abs)
	}
	opts.SourceDirs = dirs

	if opts.Locale != "" {
		if _, ok := locale.Language(opts.Locale); !ok {
			return fmt.Errorf("unsupported locale %q", opts.Locale)
		}
	}
	return nil
}
