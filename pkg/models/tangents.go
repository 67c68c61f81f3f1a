package models

import (
	"math"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// HasTangents reports whether any vertex carries a non-zero tangent.
func (m *Mesh) HasTangents() bool {
	for _, v := range m.Vertices {
		if v.Tangent.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// CalculateTangents generates per-vertex tangents from the UV layout.
// Each face adds its dP/du direction to its three vertices; the sums are then
// orthogonalized against the vertex normal. Vertices whose faces have no usable
// UV area get an arbitrary tangent perpendicular to the normal.
func (m *Mesh) CalculateTangents() {
	for i := range m.Vertices {
		m.Vertices[i].Tangent = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]]
		v1 := m.Vertices[f.V[1]]
		v2 := m.Vertices[f.V[2]]

		e1 := v1.Position.Vec3().Sub(v0.Position.Vec3())
		e2 := v2.Position.Vec3().Sub(v0.Position.Vec3())
		d1 := v1.UV.Sub(v0.UV)
		d2 := v2.UV.Sub(v0.UV)

		denom := d1.Cross(d2)
		if denom == 0 {
			continue // degenerate UV triangle
		}
		t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(1 / denom)

		for _, idx := range f.V {
			m.Vertices[idx].Tangent = m.Vertices[idx].Tangent.Add(t)
		}
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := m.Vertices[i].Tangent

		// Gram-Schmidt: T = normalize(T - N*(N·T))
		t = t.Sub(n.Scale(n.Dot(t)))
		if t.LenSq() < 1e-12 {
			t = perpendicular(n)
		}
		m.Vertices[i].Tangent = t.Normalize()
	}
}

func perpendicular(n math3d.Vec3) math3d.Vec3 {
	if math.Abs(n.X) < 0.9 {
		return math3d.Right().Sub(n.Scale(n.X))
	}
	return math3d.Up().Sub(n.Scale(n.Y))
}

// ensureFrame fills in whatever the source file left out so every vertex
// reaches the renderer with a normal and a tangent.
func (m *Mesh) ensureFrame() {
	if !m.HasNormals() {
		m.CalculateSmoothNormals()
	}
	if !m.HasTangents() {
		m.CalculateTangents()
	}
}
