package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger Logger `yaml:"logger"`
	Report Report `yaml:"report"`
}

type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      *bool  `yaml:"json_format"`
	DisableTime     *bool  `yaml:"disable_time"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Report holds the defaults of the convert command.
type Report struct {
	Locale      string   `yaml:"locale"`
	SourceDirs  []string `yaml:"source_dirs"`
	ToolVersion string   `yaml:"tool_version"`
	Pretty      *bool    `yaml:"pretty"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads the YAML configuration at configPath. An empty path
// yields the defaults.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}
	if configPath == "" {
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}
