// Package batch renders the pose table to image files with a worker pool.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"linkage-renderer/internal/export"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
	"linkage-renderer/internal/viewer"
)

// RestPose marks the item rendered with every joint at rest.
const RestPose = -1

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    export.Format
	Meshes    shape.Resolver
	Render    raster.Options
	Step      float64
	// Script is replayed after the pose is applied, e.g. to orbit the camera.
	Script  []input.Event
	Workers int
	Quiet   bool
}

// Item is one frame to render.
type Item struct {
	Pose int // index into the pose table, or RestPose
	Name string
}

// Image returns the output file name for the item.
func (it Item) Image(f export.Format) string {
	if it.Pose == RestPose {
		return fmt.Sprintf("rest.%s", f)
	}
	return fmt.Sprintf("pose_%02d_%s.%s", it.Pose, strings.ReplaceAll(it.Name, " ", "_"), f)
}

// Items lists the rest pose followed by every entry of poses.
func Items(poses scene.PoseTable) []Item {
	items := []Item{{Pose: RestPose, Name: "rest"}}
	for i, p := range poses {
		items = append(items, Item{Pose: i, Name: p.Name})
	}
	return items
}

// Result holds the outcome of processing one item.
type Result struct {
	Name    string
	Pose    int
	Image   string
	Success bool
	Error   string
}

// Run processes all items using a worker pool. Each item gets its own
// viewer, so no scene is shared between workers; only the mesh cache is.
func Run(cfg Config, items []Item) []Result {
	total := len(items)
	results := make([]Result, total)
	var processed atomic.Int64
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && !cfg.Quiet {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	itemChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				results[idx] = processItem(cfg, items[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range items {
		itemChan <- i
	}
	close(itemChan)

	wg.Wait()
	close(done)

	return results
}

func processItem(cfg Config, item Item) Result {
	res := Result{Name: item.Name, Pose: item.Pose, Image: item.Image(cfg.Format)}

	v, err := viewer.New(cfg.Meshes, cfg.Render, cfg.Step)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if item.Pose != RestPose {
		if err := v.Controller.ApplyPose(item.Pose); err != nil {
			res.Error = err.Error()
			return res
		}
	}
	if err := v.Play(cfg.Script); err != nil {
		res.Error = err.Error()
		return res
	}

	if err := export.WriteImage(filepath.Join(cfg.OutputDir, res.Image), v.Frame()); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
