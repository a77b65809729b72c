package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkage-renderer/internal/batch"
	"linkage-renderer/internal/config"
	"linkage-renderer/internal/creature"
	"linkage-renderer/internal/export"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/shape"
	"linkage-renderer/internal/viewer"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to YAML config file")
	all := flag.Bool("all", false, "Render the rest pose and every stored pose")
	pose := flag.Int("pose", -1, "Apply this stored pose before rendering")
	keys := flag.String("keys", "", `Input script replayed before rendering, e.g. "2 , right up up drag:40,0"`)
	out := flag.String("out", "", "Output image (default: <output>/frame.<format>)")
	gltfOut := flag.String("gltf", "", "Also write the posed hierarchy as .gltf or .glb")
	outputDir := flag.String("output", "", "Output directory (default: ./renders)")
	format := flag.String("format", "", "Image format: webp, png or tga (default: webp)")
	width := flag.Int("width", 0, "Frame width (default: 640)")
	height := flag.Int("height", 0, "Frame height (default: 480)")
	workers := flag.Int("workers", 0, "Number of worker goroutines for -all (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Width:     *width,
		Height:    *height,
		Format:    *format,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opt, err := cfg.RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	script, err := input.ParseScript(*keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -keys: %v\n", err)
		os.Exit(1)
	}

	imgFormat, _ := cfg.ImageFormat()
	meshes := shape.NewCache()

	if *all {
		os.Exit(renderAll(cfg, opt, imgFormat, meshes, script))
	}

	v, err := viewer.New(meshes, opt, cfg.Step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *pose >= 0 {
		if err := v.Controller.ApplyPose(*pose); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying pose: %v\n", err)
			os.Exit(1)
		}
	}
	if err := v.Play(script); err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying -keys: %v\n", err)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = filepath.Join(cfg.OutputDir, "frame."+string(imgFormat))
	}
	if err := export.WriteImage(path, v.Frame()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}

	st := v.State()
	fmt.Printf("Frame: %s (%dx%d)\n", path, cfg.Width, cfg.Height)
	fmt.Printf("Mode: %s, Axis: %s, Selected: %v, Pose: %d %s\n", st.Mode, st.Axis, st.Selected, st.Pose, st.PoseName)

	if *gltfOut != "" {
		doc, err := export.GLTF(v.Assembly.Graph, meshes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building glTF: %v\n", err)
			os.Exit(1)
		}
		if err := export.WriteGLTF(*gltfOut, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *gltfOut, err)
			os.Exit(1)
		}
		fmt.Printf("glTF: %s (%d nodes)\n", *gltfOut, len(doc.Nodes))
	}
}

func renderAll(cfg config.Config, opt raster.Options, f export.Format, meshes shape.Resolver, script []input.Event) int {
	items := batch.Items(creature.Poses())

	fmt.Printf("Linkage renderer → %s\n", f)
	fmt.Printf("Frames: %d, Workers: %d\n", len(items), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    f,
		Meshes:    meshes,
		Render:    opt,
		Step:      cfg.Step,
		Script:    script,
		Workers:   cfg.Workers,
	}, items)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(items))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		return 1
	}
	return 0
}
