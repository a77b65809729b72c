package batch

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-renderer/internal/creature"
	"linkage-renderer/internal/export"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

func testConfig(t *testing.T) Config {
	return Config{
		OutputDir: t.TempDir(),
		Format:    export.PNG,
		Meshes:    shape.NewCache(),
		Render:    raster.Options{Width: 32, Height: 24, Supersample: 1, Background: scene.BlueGreen},
		Workers:   3,
		Quiet:     true,
	}
}

func TestItems(t *testing.T) {
	items := Items(creature.Poses())
	require.Len(t, items, 6)
	assert.Equal(t, RestPose, items[0].Pose)
	assert.Equal(t, "rest.webp", items[0].Image(export.WebP))
	assert.Equal(t, Item{Pose: 3, Name: "both-down"}, items[4])
	assert.Equal(t, "pose_03_both-down.png", items[4].Image(export.PNG))
}

func TestRunWritesOneImagePerPose(t *testing.T) {
	cfg := testConfig(t)
	items := Items(creature.Poses())
	results := Run(cfg, items)
	require.Len(t, results, len(items))

	for i, r := range results {
		require.True(t, r.Success, r.Error)
		assert.Equal(t, items[i].Pose, r.Pose)

		f, err := os.Open(filepath.Join(cfg.OutputDir, r.Image))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 32, img.Bounds().Dx())
	}

	rest, err := os.ReadFile(filepath.Join(cfg.OutputDir, results[0].Image))
	require.NoError(t, err)
	wave, err := os.ReadFile(filepath.Join(cfg.OutputDir, results[1].Image))
	require.NoError(t, err)
	assert.NotEqual(t, rest, wave, "posed frame differs from rest")

	path := filepath.Join(cfg.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, len(items))
	assert.Equal(t, ManifestEntry{Pose: 0, Name: "wave", Image: "pose_00_wave.png"}, entries[1])
}

func TestRunReportsFailures(t *testing.T) {
	cfg := testConfig(t)
	cfg.Script = []input.Event{input.Key("?")}
	results := Run(cfg, []Item{{Pose: RestPose, Name: "rest"}, {Pose: 99, Name: "wrapped"}})

	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "unbound key")
	}

	path := filepath.Join(cfg.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
