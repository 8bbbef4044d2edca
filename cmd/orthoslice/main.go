package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"orthoslice/internal/glview"
	"orthoslice/internal/models"
	"orthoslice/pkg/config"
	"orthoslice/pkg/viewer"
	"orthoslice/pkg/visualization"
	"orthoslice/pkg/volume"
)

// testGridBoxes is the number of checker cells per axis of the fallback grid
const testGridBoxes = 8

func init() {
	// GLFW and the OpenGL context must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "orthoslice [volume]",
		Short: "Interactive orthographic slice viewer for 3D volumes",
		Long: `Shows the XY, XZ and YZ cross-sections of a volume and a 3D view of all three
in four window quadrants.

The volume is a directory of slice images, a glob pattern such as "data/*.bmp",
or a raw grid file (.raw, .bin, .vol). Without a volume an RGB test grid is shown.

Right-drag orbits the 3D view. Left-click or drag in a section moves the other
two sections to the picked point. Keys: 1/2/3 select an axis, arrows move its
slice, +/- change its extent, R resets, S saves the sections, Esc quits.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(configPath)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runViewer(cfg, path)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "orthoslice.yaml", "YAML configuration file")

	root.AddCommand(newExportCommand(&configPath), newInitConfigCommand(&configPath))
	return root
}

func newExportCommand(configPath *string) *cobra.Command {
	var planeName, outDir string

	cmd := &cobra.Command{
		Use:   "export [volume]",
		Short: "Save every section of one plane as PNG images",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}
			plane, err := models.ParsePlane(planeName)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			vol, err := loadVolume(cfg, path)
			if err != nil {
				return err
			}

			dir := filepath.Join(outDir, planeName)
			logrus.WithFields(logrus.Fields{"plane": plane, "dir": dir}).Info("exporting sections")
			return visualization.NewExporter(vol).SaveSectionSequence(plane, dir)
		},
	}
	cmd.Flags().StringVarP(&planeName, "plane", "p", "xy", "plane to export (xy, xz or yz)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "sections", "output directory")
	return cmd
}

func newInitConfigCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(*configPath); err == nil {
				return fmt.Errorf("config file %s already exists", *configPath)
			}
			if err := config.CreateDefaultConfigFile(*configPath); err != nil {
				return err
			}
			logrus.WithField("path", *configPath).Info("wrote default configuration")
			return nil
		},
	}
}

// setup loads the configuration and applies its log level.
func setup(configPath string) (*config.Config, error) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)
	return cfg, nil
}

// loadVolume reads the volume at path, or generates the RGB test grid when
// path is empty.
func loadVolume(cfg *config.Config, path string) (*volume.Volume, error) {
	var (
		vol *volume.Volume
		err error
	)
	if path == "" {
		n := cfg.Volume.TestGrid
		logrus.WithField("size", n).Info("no volume given, generating RGB test grid")
		vol, err = volume.GenerateRGBGrid(n, n, n, testGridBoxes)
	} else {
		vol, err = volume.Load(path, volume.Options{
			RawDims:     cfg.Volume.RawDims,
			RawChannels: cfg.Volume.RawChannels,
		})
	}
	if err != nil {
		if errors.Is(err, volume.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("cannot open %s: %w", path, err)
		}
		return nil, fmt.Errorf("loading volume: %w", err)
	}

	stats := vol.Stats()
	logrus.WithFields(logrus.Fields{
		"width":    vol.Width,
		"height":   vol.Height,
		"depth":    vol.Depth,
		"channels": vol.Channels,
		"min":      stats.Min,
		"max":      stats.Max,
		"mean":     stats.Mean,
		"stddev":   stats.StdDev,
	}).Info("volume loaded")
	return vol, nil
}

func runViewer(cfg *config.Config, path string) error {
	vol, err := loadVolume(cfg, path)
	if err != nil {
		return err
	}

	extent := cfg.ExtentVec()
	if cfg.Volume.ExtentFromVoxels {
		extent = vol.Aspect()
	}
	state, err := viewer.NewViewerState(extent)
	if err != nil {
		return err
	}

	win, err := glview.NewWindow(glview.WindowOptions{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	renderer, err := glview.NewRenderer(vol)
	if err != nil {
		return err
	}
	defer renderer.Close()

	panel := glview.NewKeyPanel(win, vol, glview.KeyPanelOptions{
		Title:       cfg.Window.Title,
		SliceStep:   cfg.Interaction.SliceStep,
		ExtentStep:  cfg.Interaction.ExtentStep,
		SnapshotDir: cfg.Output.SnapshotDir,
	})

	v := viewer.New(state, viewer.Options{
		OrbitSensitivity: cfg.Interaction.OrbitSensitivity,
		MarkerScale:      cfg.Interaction.MarkerScale,
	})
	return v.Run(win, panel, renderer)
}
