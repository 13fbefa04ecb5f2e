package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"httpchain/internal/logging"
)

// Default returns the configuration used when no config file is supplied.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		HTTP:    HTTPConfig{TimeoutSeconds: 30},
		Reports: ReportsConfig{OutputDir: "reports"},
		Server:  ServerConfig{Name: "httpchain", Version: "dev"},
	}
}

// LoadConfig reads, parses, and validates the YAML configuration file.
// Unset fields fall back to the defaults.
func LoadConfig(filename string) (*Config, error) {
	fileBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filename, err)
	}

	config := Default()
	if err := yaml.Unmarshal(fileBytes, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in '%s': %w", filename, err)
	}

	applyDefaults(config)
	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyDefaults(config *Config) {
	defaults := Default()
	if config.Logging.Level == "" {
		config.Logging.Level = defaults.Logging.Level
	}
	if config.HTTP.TimeoutSeconds <= 0 {
		config.HTTP.TimeoutSeconds = defaults.HTTP.TimeoutSeconds
	}
	if config.Reports.OutputDir == "" {
		config.Reports.OutputDir = defaults.Reports.OutputDir
	}
	if config.Server.Name == "" {
		config.Server.Name = defaults.Server.Name
	}
	if config.Server.Version == "" {
		config.Server.Version = defaults.Server.Version
	}
}

// Validate checks the configuration for values that cannot work.
func Validate(config *Config) error {
	if _, err := logging.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("config section 'logging': %w", err)
	}
	if config.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("config section 'http': timeout_seconds must not be negative")
	}
	if config.Reports.OutputDir == "" {
		return fmt.Errorf("config section 'reports': output_dir must not be empty")
	}
	return nil
}
