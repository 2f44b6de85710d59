// Package config provides configuration loading and management for roiconnect.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Analysis parameters
	Analysis struct {
		// Sensitivity is the k in threshold = mean + k*std applied to the
		// off-diagonal correlations. May be negative.
		Sensitivity float64 `yaml:"sensitivity"`

		// NumCores specifies how many CPU cores to use for parallel
		// ROI sampling and pairwise correlation
		NumCores int `yaml:"numCores"`
	} `yaml:"analysis"`

	// Output parameters
	Output struct {
		// ReportPath is where the thresholded pair report is written as CSV.
		// Empty means the report is kept in memory only.
		ReportPath string `yaml:"reportPath"`

		// MatrixPath is where the full correlation matrix is written in
		// NumPy .npy format. Empty disables the matrix export.
		MatrixPath string `yaml:"matrixPath"`

		// Verbose controls the level of progress output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default analysis parameters
	cfg.Analysis.Sensitivity = 1.0
	cfg.Analysis.NumCores = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.ReportPath = "fc_report.csv"
	cfg.Output.MatrixPath = ""
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
