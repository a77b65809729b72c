package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tessellation used for the round primitives.
const (
	Slices = 24
	Stacks = 12
)

// Generate builds the unit mesh for a kind. None yields an empty mesh.
func Generate(k Kind) *Mesh {
	switch k {
	case Cube:
		return cube()
	case Cylinder:
		return cylinder(Slices)
	case Sphere:
		return sphere(Slices, Stacks)
	case Cone:
		return cone(Slices)
	}
	return &Mesh{}
}

func cube() *Mesh {
	m := &Mesh{}
	for i := 0; i < 8; i++ {
		m.addVert(mgl64.Vec3{
			float64(i&1)*2 - 1,
			float64(i>>1&1)*2 - 1,
			float64(i>>2&1)*2 - 1,
		})
	}
	m.quad(0, 2, 3, 1) // -z
	m.quad(4, 5, 7, 6) // +z
	m.quad(0, 1, 5, 4) // -y
	m.quad(2, 6, 7, 3) // +y
	m.quad(0, 4, 6, 2) // -x
	m.quad(1, 3, 7, 5) // +x
	return m
}

func ring(m *Mesh, n int, radius, z float64) int {
	first := len(m.Verts)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		m.addVert(mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), z})
	}
	return first
}

func cylinder(n int) *Mesh {
	m := &Mesh{}
	bot := ring(m, n, 1, -1)
	top := ring(m, n, 1, 1)
	cb := m.addVert(mgl64.Vec3{0, 0, -1})
	ct := m.addVert(mgl64.Vec3{0, 0, 1})
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.quad(bot+i, bot+j, top+j, top+i)
		m.tri(cb, bot+j, bot+i)
		m.tri(ct, top+i, top+j)
	}
	return m
}

func cone(n int) *Mesh {
	m := &Mesh{}
	base := ring(m, n, 1, -1)
	cb := m.addVert(mgl64.Vec3{0, 0, -1})
	apex := m.addVert(mgl64.Vec3{0, 0, 1})
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.tri(base+i, base+j, apex)
		m.tri(cb, base+j, base+i)
	}
	return m
}

func sphere(slices, stacks int) *Mesh {
	m := &Mesh{}
	south := m.addVert(mgl64.Vec3{0, 0, -1})
	rings := make([]int, 0, stacks-1)
	for s := 1; s < stacks; s++ {
		phi := math.Pi*float64(s)/float64(stacks) - math.Pi/2
		rings = append(rings, ring(m, slices, math.Cos(phi), math.Sin(phi)))
	}
	north := m.addVert(mgl64.Vec3{0, 0, 1})

	for i := 0; i < slices; i++ {
		j := (i + 1) % slices
		m.tri(south, rings[0]+j, rings[0]+i)
		last := rings[len(rings)-1]
		m.tri(north, last+i, last+j)
	}
	for r := 0; r+1 < len(rings); r++ {
		lo, hi := rings[r], rings[r+1]
		for i := 0; i < slices; i++ {
			j := (i + 1) % slices
			m.quad(lo+i, lo+j, hi+j, hi+i)
		}
	}
	return m
}
