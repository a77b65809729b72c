package config

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-renderer/internal/export"
	"linkage-renderer/internal/scene"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `
output_dir: out
backdrop_dir: backdrops
width: 320
format: png
background: "#102030"
fill_ratio: 0.8
step: 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{Height: 200, Workers: 3})
	require.NoError(t, cfg.Validate())

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "backdrops"), cfg.BackdropDir)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 5.0, cfg.Step)

	f, err := cfg.ImageFormat()
	require.NoError(t, err)
	assert.Equal(t, export.PNG, f)
	bg, err := cfg.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, scene.RGB255(0x10, 0x20, 0x30), bg)
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "width: 320\nformat: png\nlisten: \":9000\"\n"))
	require.NoError(t, err)
	cfg.Resolve(Flags{Width: 100, Format: "tga", OutputDir: "/tmp/x", Listen: ":9100"})
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, "tga", cfg.Format)
	assert.Equal(t, "/tmp/x", cfg.OutputDir)
	assert.Equal(t, ":9100", cfg.Listen)
}

func TestDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, string(export.WebP), cfg.Format)
	assert.Equal(t, scene.BlueGreen.Hex(), cfg.Background)
	assert.Equal(t, 2.5, cfg.Step)
	assert.Positive(t, cfg.Workers)
	assert.NotEmpty(t, cfg.Listen)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "widht: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	for _, c := range []Config{
		{Format: "gif"},
		{Background: "teal"},
		{FillRatio: 1.5},
	} {
		c.Resolve(Flags{})
		assert.Error(t, c.Validate(), "%+v", c)
	}
}

func TestRenderOptions(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	f, err := os.Create(filepath.Join(dir, "sand.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg := Config{BackdropDir: dir, Backdrop: "sand", FillRatio: 0.5}
	cfg.Resolve(Flags{Width: 50, Height: 40})
	opt, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, 50, opt.Width)
	assert.Equal(t, 40, opt.Height)
	assert.Equal(t, scene.BlueGreen.NRGBA(), opt.Background.NRGBA())
	assert.Equal(t, 0.5, opt.FillRatio)
	require.NotNil(t, opt.Backdrop)
	assert.Equal(t, 2, opt.Backdrop.Bounds().Dx())

	cfg.Backdrop = "kelp"
	_, err = cfg.RenderOptions()
	assert.Error(t, err)
}
