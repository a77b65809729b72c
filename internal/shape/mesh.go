package shape

import "github.com/go-gl/mathgl/mgl64"

// Face holds polygon type and vertex indices.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Face struct {
	Polygon int
	VI      [4]int
}

// Mesh holds unit-space geometry for one primitive kind.
type Mesh struct {
	Verts []mgl64.Vec3
	Faces []Face
}

// Triangles returns the number of triangles after quad splitting.
func (m *Mesh) Triangles() int {
	n := 0
	for _, f := range m.Faces {
		if f.Polygon == 4 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Indices flattens the faces into a triangle list.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, m.Triangles()*3)
	for _, f := range m.Faces {
		out = append(out, uint32(f.VI[0]), uint32(f.VI[1]), uint32(f.VI[2]))
		if f.Polygon == 4 {
			out = append(out, uint32(f.VI[0]), uint32(f.VI[2]), uint32(f.VI[3]))
		}
	}
	return out
}

func (m *Mesh) addVert(v mgl64.Vec3) int {
	m.Verts = append(m.Verts, v)
	return len(m.Verts) - 1
}

func (m *Mesh) tri(a, b, c int) {
	m.Faces = append(m.Faces, Face{Polygon: 3, VI: [4]int{a, b, c}})
}

func (m *Mesh) quad(a, b, c, d int) {
	m.Faces = append(m.Faces, Face{Polygon: 4, VI: [4]int{a, b, c, d}})
}
