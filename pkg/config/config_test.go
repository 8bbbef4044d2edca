package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"orthoslice/internal/models"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, cfg.ExtentVec())
	assert.Equal(t, 0.02, cfg.Interaction.OrbitSensitivity)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orthoslice.yaml")
	yml := `
window:
  width: 800
volume:
  extent: [2, 1, 0.5]
  rawDims: [64, 64, 32]
interaction:
  orbitSensitivity: 0.01
output:
  logLevel: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 1200, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 0.5}, cfg.ExtentVec())
	assert.Equal(t, [3]int{64, 64, 32}, cfg.Volume.RawDims)
	assert.Equal(t, 0.01, cfg.Interaction.OrbitSensitivity)
	assert.Equal(t, "debug", cfg.Output.LogLevel)
}

func TestLoadConfigRejectsDegenerateExtent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("volume:\n  extent: [1, 0, 1]\n"), 0644))

	_, err := LoadConfig(path)
	assert.True(t, errors.Is(err, models.ErrConfiguration), "got %v", err)
}

func TestLoadConfigParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"window", func(c *Config) { c.Window.Width = 0 }},
		{"channels", func(c *Config) { c.Volume.RawChannels = 2 }},
		{"raw dims", func(c *Config) { c.Volume.RawDims[1] = -4 }},
		{"test grid", func(c *Config) { c.Volume.TestGrid = 0 }},
		{"sensitivity", func(c *Config) { c.Interaction.OrbitSensitivity = 0 }},
		{"log level", func(c *Config) { c.Output.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.True(t, errors.Is(cfg.Validate(), models.ErrConfiguration))
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orthoslice.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
