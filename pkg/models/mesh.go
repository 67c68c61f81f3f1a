// Package models provides the immutable geometry the renderer consumes:
// meshes built from vertex and index buffers, the per-triangle scratch
// structure the rasterizer fills, and loaders for glTF and Wavefront OBJ.
package models

import (
	"fmt"
	"image"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// Vertex holds every attribute the pipeline carries for one corner.
// ViewDir is never loaded; the vertex stage fills it per frame.
type Vertex struct {
	Position math3d.Vec4
	UV       math3d.Vec2
	Normal   math3d.Vec3
	Tangent  math3d.Vec3
	ViewDir  math3d.Vec3
}

// Face is one triangle as three indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// Triangle is the three-vertex working set filled for each face in turn.
type Triangle struct {
	V [3]Vertex
}

// Material carries the decoded images a mesh is shaded with.
// Any image may be nil; the renderer substitutes a neutral default.
type Material struct {
	Name     string
	Diffuse  image.Image
	Normal   image.Image
	Specular image.Image
	Gloss    image.Image
}

// Mesh is a loaded object: vertices and index triples never change after
// loading, so one Mesh can be drawn by both render paths every frame.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face
	Material Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0),
		Faces:    make([]Face, 0),
	}
}

// FromBuffers builds a mesh from a vertex list and a flat index list whose
// length must be a multiple of three.
func FromBuffers(name string, vertices []Vertex, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a whole number of triangles", ErrInvalidIndices, len(indices))
	}

	m := NewMesh(name)
	m.Vertices = vertices
	for i := 0; i < len(indices); i += 3 {
		m.Faces = append(m.Faces, Face{V: [3]int{indices[i], indices[i+1], indices[i+2]}})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CalculateBounds()
	return m, nil
}

// Validate checks that every face references an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return fmt.Errorf("%w: mesh %q", ErrEmptyMesh, m.Name)
	}
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidIndices, i, idx, len(m.Vertices))
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position.Vec3()
	m.BoundsMax = m.BoundsMin

	for _, v := range m.Vertices[1:] {
		p := v.Position.Vec3()
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// LoadTriangle fills tri with the vertices of face i taken from verts, which is
// either m.Vertices or a per-frame transformed copy of the same length.
func (m *Mesh) LoadTriangle(i int, verts []Vertex, tri *Triangle) {
	f := m.Faces[i].V
	tri.V[0] = verts[f[0]]
	tri.V[1] = verts[f[1]]
	tri.V[2] = verts[f[2]]
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals computes area-weighted averaged normals.
// Faces are counter-clockwise when seen from their front side.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position.Vec3()
		v1 := m.Vertices[f.V[1]].Position.Vec3()
		v2 := m.Vertices[f.V[2]].Position.Vec3()

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}
