package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.LoadImages {
		t.Error("LoadImages should default to true")
	}
}

func writeTriangleGLB(t *testing.T) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 1}, {1, 1}, {0, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(idx),
			Attributes: map[string]int{
				gltf.POSITION:   pos,
				gltf.TEXCOORD_0: uv,
			},
		}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLTFTriangle(t *testing.T) {
	m, err := LoadGLTF(writeTriangleGLB(t))
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}

	if m.TriangleCount() != 1 || m.VertexCount() != 3 {
		t.Fatalf("got %d triangles / %d vertices", m.TriangleCount(), m.VertexCount())
	}
	if m.Faces[0].V != [3]int{0, 1, 2} {
		t.Errorf("winding changed: %v", m.Faces[0].V)
	}
	// UVs keep glTF's top-left origin
	if m.Vertices[2].UV.Y != 0 {
		t.Errorf("UV of vertex 2 = %v, want V=0", m.Vertices[2].UV)
	}
	// Generated normal of a counter-clockwise XY triangle faces +Z
	if n := m.Vertices[0].Normal; n.Z < 0.999 {
		t.Errorf("normal = %v, want +Z", n)
	}
	if !m.HasTangents() {
		t.Error("tangents should be generated")
	}
	if m.Vertices[0].Position.W != 1 {
		t.Errorf("position w = %v, want 1", m.Vertices[0].Position.W)
	}
}
