// Package config loads the viewer's YAML settings and merges CLI overrides.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"linkage-renderer/internal/export"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/texture"
)

// Config holds output paths and render settings.
type Config struct {
	// Paths
	BaseDir     string `yaml:"base_dir"`
	OutputDir   string `yaml:"output_dir"`
	BackdropDir string `yaml:"backdrop_dir"`

	// Render settings
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Supersample int     `yaml:"supersample"`
	Format      string  `yaml:"format"`
	Background  string  `yaml:"background"` // "#rrggbb"
	Transparent bool    `yaml:"transparent"`
	Backdrop    string  `yaml:"backdrop"`   // image name in BackdropDir
	FillRatio   float64 `yaml:"fill_ratio"` // 0 keeps the camera framing
	Workers     int     `yaml:"workers"`

	// Interaction
	Step   float64 `yaml:"step"`
	Listen string  `yaml:"listen"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Width     int
	Height    int
	Format    string
	Workers   int
	Listen    string
}

// Load reads a YAML config file and returns Config.
// Fields not set in the file keep their zero values; unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.BackdropDir != "" && !filepath.IsAbs(c.BackdropDir) {
		c.BackdropDir = filepath.Join(c.BaseDir, c.BackdropDir)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = string(export.WebP)
	}
	if c.Background == "" {
		c.Background = scene.BlueGreen.Hex()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Step <= 0 {
		c.Step = 2.5
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
}

// Validate checks the values Resolve cannot default.
func (c *Config) Validate() error {
	if _, err := c.ImageFormat(); err != nil {
		return err
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if c.FillRatio < 0 || c.FillRatio > 1 {
		return errors.Errorf("config: fill_ratio %g outside [0, 1]", c.FillRatio)
	}
	return nil
}

// ImageFormat parses Format.
func (c *Config) ImageFormat() (export.Format, error) {
	f, err := export.ParseFormat(c.Format)
	return f, errors.Wrap(err, "config")
}

// BackgroundColor parses Background.
func (c *Config) BackgroundColor() (scene.Color, error) {
	col, err := scene.ParseColor(c.Background)
	return col, errors.Wrap(err, "config")
}

// RenderOptions builds the frame setup, loading the backdrop if one is named.
func (c *Config) RenderOptions() (raster.Options, error) {
	bg, err := c.BackgroundColor()
	if err != nil {
		return raster.Options{}, err
	}
	opt := raster.Options{
		Width:       c.Width,
		Height:      c.Height,
		Supersample: c.Supersample,
		Background:  bg,
		Transparent: c.Transparent,
		FillRatio:   c.FillRatio,
	}
	if c.Backdrop == "" {
		return opt, nil
	}

	index := texture.BuildIndex(c.BackdropDir)
	path, ok := index.ResolvePath(c.Backdrop)
	if !ok {
		return raster.Options{}, errors.Errorf("config: backdrop %q not found in %s (%d images indexed)", c.Backdrop, c.BackdropDir, index.Len())
	}
	img, err := texture.LoadTexture(path)
	if err != nil {
		return raster.Options{}, errors.Wrap(err, "config: backdrop")
	}
	opt.Backdrop = img
	return opt, nil
}

// Backdrops indexes BackdropDir for owners that switch backdrops at runtime.
func (c *Config) Backdrops() *texture.Cache {
	return texture.NewCache(texture.BuildIndex(c.BackdropDir))
}
