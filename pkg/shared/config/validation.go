package config

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/sarif-reporter/pkg/shared/files"
)

var logLevels = map[string]struct{}{
	"":      {},
	"TRACE": {},
	"DEBUG": {},
	"INFO":  {},
	"WARN":  {},
	"ERROR": {},
}

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks the log level name.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if _, ok := logLevels[strings.ToUpper(loggerConfig.Level)]; !ok {
		return fmt.Errorf("unknown log level %q", loggerConfig.Level)
	}
	return nil
}

// ValidateReportConfig expands the configured source directories in place.
func ValidateReportConfig(reportConfig *Report) error {
	if reportConfig == nil {
		return fmt.Errorf("report configuration is nil")
	}
	for i, dir := range reportConfig.SourceDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("source_dirs[%d] is empty", i)
		}
		expanded, err := files.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("failed to expand source_dirs[%d]: %w", i, err)
		}
		reportConfig.SourceDirs[i] = expanded
	}
	return nil
}
