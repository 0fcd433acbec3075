// Package config provides configuration loading and management for the
// segmentation tools. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-segment-mcp/internal/raster"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Segmentation parameters
	Segmentation struct {
		// Threshold is the exclusive color distance limit for joining a region
		Threshold int `yaml:"threshold"`

		// NeighborOrder lists the four directions in visiting order
		NeighborOrder string `yaml:"neighborOrder"`
	} `yaml:"segmentation"`

	// Preprocessing applied before segmentation
	Preprocess struct {
		// BlurSigma is the Gaussian blur sigma; 0 disables blurring
		BlurSigma float64 `yaml:"blurSigma"`

		// MaxDimension caps the longer image side; 0 keeps the original size
		MaxDimension int `yaml:"maxDimension"`
	} `yaml:"preprocess"`

	// Output parameters
	Output struct {
		// Path is where the segmented image is written
		Path string `yaml:"path"`

		// ChartPath, if set, receives a PNG histogram of region sizes
		ChartPath string `yaml:"chartPath"`

		// OutlinePath, if set, receives the segmented image with region
		// boundaries drawn in OutlineColor
		OutlinePath  string `yaml:"outlinePath"`
		OutlineColor string `yaml:"outlineColor"`

		// TopRegions is how many of the largest regions the report lists
		TopRegions int `yaml:"topRegions"`

		// Styled enables terminal colors in the report
		Styled bool `yaml:"styled"`

		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Segmentation.Threshold = segment.DefaultThreshold
	cfg.Segmentation.NeighborOrder = segment.FormatOrder(segment.DefaultOrder)

	cfg.Preprocess.BlurSigma = 0
	cfg.Preprocess.MaxDimension = 0

	cfg.Output.Path = "output.gif"
	cfg.Output.ChartPath = ""
	cfg.Output.OutlinePath = ""
	cfg.Output.OutlineColor = segment.DefaultOutlineColor.Hex()
	cfg.Output.TopRegions = 5
	cfg.Output.Styled = true
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Segmentation.Threshold <= 0 {
		return fmt.Errorf("segmentation.threshold must be a positive integer")
	}
	if _, err := segment.ParseOrder(c.Segmentation.NeighborOrder); err != nil {
		return fmt.Errorf("segmentation.neighborOrder: %w", err)
	}
	if c.Preprocess.BlurSigma < 0 {
		return fmt.Errorf("preprocess.blurSigma must not be negative")
	}
	if c.Preprocess.MaxDimension < 0 {
		return fmt.Errorf("preprocess.maxDimension must not be negative")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if _, err := raster.ParseHex(c.Output.OutlineColor); err != nil {
		return fmt.Errorf("output.outlineColor: %w", err)
	}
	return nil
}

// Grower builds the region grower described by the configuration.
func (c *Config) Grower() (segment.Grower, error) {
	order, err := segment.ParseOrder(c.Segmentation.NeighborOrder)
	if err != nil {
		return segment.Grower{}, err
	}
	return segment.Grower{Threshold: c.Segmentation.Threshold, Order: order}, nil
}

// PrepareOptions returns the preprocessing settings.
func (c *Config) PrepareOptions() raster.PrepareOptions {
	return raster.PrepareOptions{
		MaxDimension: c.Preprocess.MaxDimension,
		BlurSigma:    c.Preprocess.BlurSigma,
	}
}

// OutlineColor returns the parsed boundary color.
func (c *Config) OutlineColor() (raster.ColorRGB, error) {
	return raster.ParseHex(c.Output.OutlineColor)
}
