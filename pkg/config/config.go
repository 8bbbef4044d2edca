// Package config provides configuration loading and management for orthoslice.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"orthoslice/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Window parameters
	Window struct {
		// Width and Height are the initial window size in screen coordinates
		Width  int `yaml:"width"`
		Height int `yaml:"height"`

		Title string `yaml:"title"`

		// VSync enables swap interval 1
		VSync bool `yaml:"vsync"`
	} `yaml:"window"`

	// Volume parameters
	Volume struct {
		// Extent is the initial physical size of the volume along x, y and z
		Extent [3]float64 `yaml:"extent"`

		// ExtentFromVoxels replaces Extent with the voxel grid proportions
		ExtentFromVoxels bool `yaml:"extentFromVoxels"`

		// RawDims are the dimensions of raw grid files; zero means parse the file name
		RawDims [3]int `yaml:"rawDims"`

		// RawChannels is 1 for scalar or 3 for RGB raw grids
		RawChannels int `yaml:"rawChannels"`

		// TestGrid is the resolution of the RGB grid shown when no volume is given
		TestGrid int `yaml:"testGrid"`
	} `yaml:"volume"`

	// Interaction parameters
	Interaction struct {
		// OrbitSensitivity is the orbit angle in radians per dragged pixel
		OrbitSensitivity float64 `yaml:"orbitSensitivity"`

		// MarkerScale is the radius of the pick marker in world units
		MarkerScale float64 `yaml:"markerScale"`

		// SliceStep is the slice increment of one key press
		SliceStep float64 `yaml:"sliceStep"`

		// ExtentStep is the extent increment of one key press
		ExtentStep float64 `yaml:"extentStep"`
	} `yaml:"interaction"`

	// Output parameters
	Output struct {
		// SnapshotDir is where section snapshots are written
		SnapshotDir string `yaml:"snapshotDir"`

		// LogLevel is a logrus level name
		LogLevel string `yaml:"logLevel"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = 1600
	cfg.Window.Height = 1200
	cfg.Window.Title = "Volume Slicer"
	cfg.Window.VSync = true

	cfg.Volume.Extent = [3]float64{1, 1, 1}
	cfg.Volume.RawChannels = 1
	cfg.Volume.TestGrid = 256

	cfg.Interaction.OrbitSensitivity = 0.02
	cfg.Interaction.MarkerScale = 0.02
	cfg.Interaction.SliceStep = 0.01
	cfg.Interaction.ExtentStep = 0.05

	cfg.Output.SnapshotDir = "snapshots"
	cfg.Output.LogLevel = "info"

	return cfg
}

// ExtentVec returns the configured extent as a vector.
func (c *Config) ExtentVec() r3.Vec {
	return r3.Vec{X: c.Volume.Extent[0], Y: c.Volume.Extent[1], Z: c.Volume.Extent[2]}
}

// Validate rejects configurations the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", models.ErrConfiguration, c.Window.Width, c.Window.Height)
	}
	if err := models.ValidateExtent(c.ExtentVec()); err != nil {
		return err
	}
	if c.Volume.RawChannels != 1 && c.Volume.RawChannels != 3 {
		return fmt.Errorf("%w: rawChannels must be 1 or 3, got %d", models.ErrConfiguration, c.Volume.RawChannels)
	}
	for _, d := range c.Volume.RawDims {
		if d < 0 {
			return fmt.Errorf("%w: negative raw dimension %v", models.ErrConfiguration, c.Volume.RawDims)
		}
	}
	if c.Volume.TestGrid <= 0 {
		return fmt.Errorf("%w: testGrid must be positive, got %d", models.ErrConfiguration, c.Volume.TestGrid)
	}
	if c.Interaction.OrbitSensitivity <= 0 || c.Interaction.MarkerScale <= 0 ||
		c.Interaction.SliceStep <= 0 || c.Interaction.ExtentStep <= 0 {
		return fmt.Errorf("%w: interaction steps must be positive", models.ErrConfiguration)
	}
	if _, err := logrus.ParseLevel(c.Output.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", models.ErrConfiguration, err)
	}
	return nil
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
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

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

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
