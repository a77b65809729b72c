package batch

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Pose  int    `json:"pose"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// WriteManifest writes manifest.json listing the frames that rendered.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Pose:  r.Pose,
			Name:  r.Name,
			Image: r.Image,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, data, 0644))
}
