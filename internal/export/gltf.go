package export

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

// GeometrySuffix names the child node that carries a part's mesh.
const GeometrySuffix = "_geom"

type meshKey struct {
	kind  shape.Kind
	color scene.Color
}

type gltfBuilder struct {
	doc       *gltf.Document
	meshes    shape.Resolver
	accessors map[shape.Kind][2]uint32 // position, indices
	materials map[scene.Color]uint32
	gmeshes   map[meshKey]uint32
}

// GLTF converts the current state of g into a glTF document. Every scene
// node becomes a glTF node with its joint translation and rotation, nested
// exactly as in the graph. Scale and pivot live on a separate geometry child
// so they stay out of the inherited frame. g must be updated.
func GLTF(g *scene.Graph, meshes shape.Resolver) (*gltf.Document, error) {
	b := &gltfBuilder{
		doc:       gltf.NewDocument(),
		meshes:    meshes,
		accessors: make(map[shape.Kind][2]uint32),
		materials: make(map[scene.Color]uint32),
		gmeshes:   make(map[meshKey]uint32),
	}

	index := make(map[scene.ID]uint32, g.Len())
	var walkErr error
	g.Walk(func(n *scene.Node, _ int) bool {
		if walkErr != nil {
			return false
		}
		idx := b.addJoint(n)
		index[n.ID()] = idx

		if n.Parent() == scene.Nil {
			b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, idx)
		} else {
			parent, ok := index[n.Parent()]
			if !ok {
				walkErr = errors.Wrapf(scene.ErrTopology, "%s visited before its parent", n.Name)
				return false
			}
			p := b.doc.Nodes[parent]
			p.Children = append(p.Children, idx)
		}

		if n.Shape.Drawable() {
			geom, err := b.addGeometry(n)
			if err != nil {
				walkErr = err
				return false
			}
			j := b.doc.Nodes[idx]
			j.Children = append(j.Children, geom)
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return b.doc, nil
}

func (b *gltfBuilder) addJoint(n *scene.Node) uint32 {
	joint := n.JointMatrix()
	q := mgl64.Mat4ToQuat(joint).Normalize()
	node := &gltf.Node{
		Name:        n.Name,
		Translation: vec3f(n.Position()),
		Rotation:    [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)},
	}
	b.doc.Nodes = append(b.doc.Nodes, node)
	return uint32(len(b.doc.Nodes) - 1)
}

func (b *gltfBuilder) addGeometry(n *scene.Node) (uint32, error) {
	mesh, err := b.mesh(n.Shape.Kind, n.Color())
	if err != nil {
		return 0, errors.Wrapf(err, "node %s", n.Name)
	}
	// S · Pivot as TRS: the pivot offset is scaled along with the geometry.
	pivot := n.Shape.Pivot().Col(3).Vec3()
	scale := n.Scale()
	offset := mgl64.Vec3{pivot[0] * scale[0], pivot[1] * scale[1], pivot[2] * scale[2]}
	node := &gltf.Node{
		Name:        n.Name + GeometrySuffix,
		Mesh:        gltf.Index(mesh),
		Translation: vec3f(offset),
		Scale:       vec3f(scale),
	}
	b.doc.Nodes = append(b.doc.Nodes, node)
	return uint32(len(b.doc.Nodes) - 1), nil
}

func (b *gltfBuilder) mesh(kind shape.Kind, c scene.Color) (uint32, error) {
	key := meshKey{kind, c}
	if idx, ok := b.gmeshes[key]; ok {
		return idx, nil
	}

	acc, ok := b.accessors[kind]
	if !ok {
		m := b.meshes.Resolve(kind)
		if m == nil || len(m.Verts) == 0 {
			return 0, errors.Errorf("no geometry for %v", kind)
		}
		positions := make([][3]float32, len(m.Verts))
		for i, v := range m.Verts {
			positions[i] = vec3f(v)
		}
		acc[0] = modeler.WritePosition(b.doc, positions)
		acc[1] = modeler.WriteIndices(b.doc, m.Indices())
		b.accessors[kind] = acc
	}

	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
		Name: kind.String(),
		Primitives: []*gltf.Primitive{
			{
				Indices:    gltf.Index(acc[1]),
				Attributes: map[string]uint32{"POSITION": acc[0]},
				Material:   gltf.Index(b.material(c)),
			},
		},
	})
	idx := uint32(len(b.doc.Meshes) - 1)
	b.gmeshes[key] = idx
	return idx, nil
}

func (b *gltfBuilder) material(c scene.Color) uint32 {
	if idx, ok := b.materials[c]; ok {
		return idx
	}
	color := new([4]float32)
	*color = c.Float4()
	b.doc.Materials = append(b.doc.Materials, &gltf.Material{
		Name:        c.Hex(),
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: color,
		},
	})
	idx := uint32(len(b.doc.Materials) - 1)
	b.materials[c] = idx
	return idx
}

func vec3f(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// EncodeGLTF writes doc to w, as GLB when binary is set.
func EncodeGLTF(w io.Writer, doc *gltf.Document, binary bool) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	return errors.Wrap(encoder.Encode(doc), "gltf encode")
}

// WriteGLTF saves doc to path. A .glb extension selects the binary container.
func WriteGLTF(path string, doc *gltf.Document) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	return errors.Wrapf(err, "write %s", path)
}
