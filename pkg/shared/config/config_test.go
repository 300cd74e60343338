package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json_format: true
report:
  locale: ja_JP
  tool_version: 4.8.3
  pretty: true
  source_dirs:
    - ~/src/main/java
    - /opt/project/src
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, GetBoolValue(cfg, "Logger.JSONFormat", false))
	assert.True(t, GetBoolValue(cfg, "Logger.DisableTime", true))
	assert.False(t, GetBoolValue(cfg, "Logger.IncludeLocation", false))
	assert.Equal(t, "ja_JP", cfg.Report.Locale)
	assert.Equal(t, "4.8.3", cfg.Report.ToolVersion)
	assert.True(t, GetBoolValue(cfg, "Report.Pretty", false))
	assert.Equal(t, []string{filepath.Join(home, "src/main/java"), "/opt/project/src"}, cfg.Report.SourceDirs)
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)
	assert.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, Config{}, *cfg)
}

func TestNewConfigErrors(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = NewConfig(t.TempDir())
	assert.Error(t, err)

	_, err = NewConfig(writeConfig(t, "report:\n  unknown_key: 1\n"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"nil config", nil, true},
		{"valid level", &Config{Logger: Logger{Level: "warn"}}, false},
		{"invalid level", &Config{Logger: Logger{Level: "loud"}}, true},
		{"empty source dir", &Config{Report: Report{SourceDirs: []string{" "}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "explicit", SetThen("explicit", "default"))
	assert.Equal(t, "default", SetThen("", "default"))
	assert.Equal(t, 3, SetThen(0, 3))

	var dirs []string
	assert.Equal(t, []string{"a"}, SetThen(dirs, []string{"a"}))
}

func TestGetBoolValueNil(t *testing.T) {
	var cfg *Config
	assert.True(t, GetBoolValue(cfg, "Logger.DisableTime", true))
	assert.False(t, GetBoolValue(nil, "Logger.DisableTime", false))
	assert.True(t, GetBoolValue(&Config{}, "Missing.Field", true))
}
