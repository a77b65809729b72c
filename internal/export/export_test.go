package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage-renderer/internal/creature"
	"linkage-renderer/internal/scene"
	"linkage-renderer/internal/shape"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	img.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})
	return img
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"webp": WebP, ".PNG": PNG, "tga": TGA} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)

	f, err := FormatFor("out/frame.webp")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", f.ContentType())
}

func TestEncodeImage(t *testing.T) {
	img := testImage()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeImage(&buf, img, f))
			assert.NotZero(t, buf.Len())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeImage(&buf, img, PNG))
	back, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, color.NRGBAModel.Convert(back.At(1, 1)))

	assert.Error(t, EncodeImage(&buf, img, Format("bmp")))
}

func TestWriteImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "frame.png")
	require.NoError(t, WriteImage(path, testImage()))
	_, err := os.Stat(path)
	assert.NoError(t, err)

	assert.Error(t, WriteImage(filepath.Join(dir, "frame.jpg"), testImage()))
}

func crabDoc(t *testing.T) (*creature.Assembly, *gltf.Document) {
	t.Helper()
	a, err := creature.Build()
	require.NoError(t, err)
	doc, err := GLTF(a.Graph, shape.NewCache())
	require.NoError(t, err)
	return a, doc
}

func TestGLTFHierarchyMatchesGraph(t *testing.T) {
	a, doc := crabDoc(t)

	byName := make(map[string]*gltf.Node)
	for _, n := range doc.Nodes {
		byName[n.Name] = n
	}

	drawable := 0
	a.Graph.Walk(func(n *scene.Node, _ int) bool {
		gn, ok := byName[n.Name]
		require.True(t, ok, n.Name)

		var want []string
		if n.Shape.Drawable() {
			drawable++
			want = append(want, n.Name+GeometrySuffix)
		}
		for _, id := range n.Children() {
			want = append(want, a.Graph.At(id).Name)
		}
		var got []string
		for _, c := range gn.Children {
			got = append(got, doc.Nodes[c].Name)
		}
		assert.Equal(t, want, got, n.Name)
		return true
	})

	assert.Len(t, doc.Nodes, a.Graph.Len()+drawable)
	require.Len(t, doc.Scenes[0].Nodes, 1)
	assert.Equal(t, "root", doc.Nodes[doc.Scenes[0].Nodes[0]].Name)
}

func TestGLTFGeometryNode(t *testing.T) {
	_, doc := crabDoc(t)
	var geom *gltf.Node
	for _, n := range doc.Nodes {
		if n.Name == "arm2"+GeometrySuffix {
			geom = n
		}
	}
	require.NotNil(t, geom)
	require.NotNil(t, geom.Mesh)
	assert.Equal(t, [3]float32{-0.1, -0.1, -0.2}, geom.Scale)
	assert.Equal(t, [3]float32{0, 0, -0.2}, geom.Translation)

	mesh := doc.Meshes[*geom.Mesh]
	assert.Equal(t, "cylinder", mesh.Name)
	mat := doc.Materials[*mesh.Primitives[0].Material]
	assert.Equal(t, creature.BodyColor.Hex(), mat.Name)
}

func TestGLTFJointRotation(t *testing.T) {
	a, err := creature.Build()
	require.NoError(t, err)
	arm, err := a.Part("arm1")
	require.NoError(t, err)
	arm.SetCurrentAngle(45, scene.AxisV)
	a.Graph.Update(mgl64.Ident4())

	doc, err := GLTF(a.Graph, shape.NewCache())
	require.NoError(t, err)
	found := false
	for _, n := range doc.Nodes {
		if n.Name == "arm1" {
			found = true
			// 45° about Y: (0, sin 22.5°, 0, cos 22.5°)
			assert.InDelta(t, 0, n.Rotation[0], 1e-6)
			assert.InDelta(t, 0.3827, n.Rotation[1], 1e-3)
			assert.InDelta(t, 0, n.Rotation[2], 1e-6)
			assert.InDelta(t, 0.9239, n.Rotation[3], 1e-3)
			assert.Equal(t, [3]float32{0, 0, 1.9}, n.Translation)
		}
	}
	assert.True(t, found)
}

func TestGLTFRoundTrip(t *testing.T) {
	_, doc := crabDoc(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeGLTF(&buf, doc, true))
	assert.True(t, strings.HasPrefix(buf.String(), "glTF"))

	back := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(&buf).Decode(back))
	assert.Len(t, back.Nodes, len(doc.Nodes))
	assert.Len(t, back.Meshes, len(doc.Meshes))

	path := filepath.Join(t.TempDir(), "crab.glb")
	require.NoError(t, WriteGLTF(path, doc))
	opened, err := gltf.Open(path)
	require.NoError(t, err)
	assert.Len(t, opened.Nodes, len(doc.Nodes))
}
