package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"linkage-renderer/internal/creature"
	"linkage-renderer/internal/input"
	"linkage-renderer/internal/mathutil"
	"linkage-renderer/internal/raster"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
	"linkage-renderer/internal/viewer"
)

func main() {
	pose := flag.Int("pose", -1, "Apply this stored pose first")
	keys := flag.String("keys", "", "Input script replayed first")
	dump := flag.String("dump", "", "Dump the full state of the named part")
	listKeys := flag.Bool("keymap", false, "Print the selection key of every part")
	capture := flag.String("capture", "", "Print the current angles as a YAML pose with this name")

	flag.Parse()

	v, err := viewer.New(shape.NewCache(), raster.Options{}, 0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *pose >= 0 {
		if err := v.Controller.ApplyPose(*pose); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	events, err := input.ParseScript(*keys)
	if err == nil {
		err = v.Play(events)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *dump != "" {
		n, err := v.Assembly.Part(*dump)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg := spew.NewDefaultConfig()
		cfg.DisableCapacities = true
		cfg.DisablePointerAddresses = true
		fmt.Println(cfg.Sdump(n))
		return
	}

	if *capture != "" {
		angles, err := scene.CapturePose(v.Assembly.Graph, v.Assembly.Order())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		out := capturedPose{Name: *capture, Angles: make(map[string][3]float64, len(angles))}
		for i, name := range v.Assembly.Registry.Names() {
			if angles[i] != ([3]float64{}) {
				out.Angles[name] = angles[i]
			}
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		return
	}

	if *listKeys {
		for i, name := range creature.Names() {
			fmt.Printf("  %s  %s\n", input.SelectKey(i), name)
		}
		return
	}

	st := v.State()
	fmt.Printf("Nodes: %d, Parts: %d, Poses: %d\n", v.Assembly.Graph.Len(), v.Assembly.Registry.Len(), len(v.Assembly.Poses))
	fmt.Printf("Mode: %s, Axis: %s, Pose: %d %s\n", st.Mode, st.Axis, st.Pose, st.PoseName)

	v.Assembly.Graph.Walk(func(n *scene.Node, depth int) bool {
		mark := " "
		if v.Controller.IsSelected(n.ID()) {
			mark = "*"
		}
		if n.Mirrored {
			mark += "m"
		} else {
			mark += " "
		}
		origin := mathutil.Origin(n.World())
		fmt.Printf("%s %s%-8s %-10v at (%5.2f, %5.2f, %5.2f)", mark, strings.Repeat("  ", depth), n.Name, n.Shape, origin[0], origin[1], origin[2])
		for _, axis := range scene.Axes {
			fmt.Printf("  %v=%6.1f %s", axis, n.Angle(axis), rangeString(n.RotationRange(axis)))
		}
		fmt.Println()
		return true
	})
}

// capturedPose lists only the parts away from rest.
type capturedPose struct {
	Name   string                `yaml:"name"`
	Angles map[string][3]float64 `yaml:"angles"`
}

func rangeString(r scene.Range) string {
	if math.IsInf(r.Min, -1) && math.IsInf(r.Max, 1) {
		return "[free]     "
	}
	return fmt.Sprintf("[%4.0f,%4.0f]", r.Min, r.Max)
}
