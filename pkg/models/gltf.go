package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	_ "golang.org/x/image/webp"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// GLTFLoader loads glTF/GLB files into Mesh format.
// All triangle primitives of all meshes are merged into one Mesh; node
// transforms are not applied.
type GLTFLoader struct {
	// LoadImages decodes the first material's base color and normal textures.
	LoadImages bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{LoadImages: true}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load dispatches on the file extension so callers can pass any supported mesh.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return LoadGLTF(path)
	case ".obj":
		return LoadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a glTF document and returns a Mesh.
// Winding is kept as authored (counter-clockwise front faces) and texture
// coordinates keep glTF's top-left origin, which is what the sampler expects.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	material := -1

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if err := l.processPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			if material < 0 && prim.Material != nil {
				material = *prim.Material
			}
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.ensureFrame()
	mesh.CalculateBounds()

	if l.LoadImages && material >= 0 {
		mesh.Material = readMaterial(doc, material, filepath.Dir(path))
	}
	return mesh, nil
}

// processPrimitive appends one triangle primitive's geometry to mesh.
func (l *GLTFLoader) processPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return ErrMissingPositions
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var tangents [][4]float32
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		if tangents, err = modeler.ReadTangent(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read tangents: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := Vertex{Position: math3d.V4(float64(p[0]), float64(p[1]), float64(p[2]), 1)}
		if i < len(normals) {
			v.Normal = vec3f(normals[i]).Normalize()
		}
		if i < len(tangents) {
			t := tangents[i]
			v.Tangent = math3d.V3(float64(t[0]), float64(t[1]), float64(t[2])).Normalize()
		}
		if i < len(uvs) {
			v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices == nil {
		// Non-indexed: consecutive vertex triples
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{base + i, base + i + 1, base + i + 2}})
		}
		return nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrInvalidIndices, len(indices))
	}
	for i := 0; i < len(indices); i += 3 {
		mesh.Faces = append(mesh.Faces, Face{V: [3]int{
			base + int(indices[i]),
			base + int(indices[i+1]),
			base + int(indices[i+2]),
		}})
	}
	return nil
}

func vec3f(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// readMaterial decodes the textures a material references. Images that cannot
// be found or decoded are left nil.
func readMaterial(doc *gltf.Document, idx int, dir string) Material {
	mat := doc.Materials[idx]
	out := Material{Name: mat.Name}

	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
		out.Diffuse = textureImage(doc, pbr.BaseColorTexture.Index, dir)
	}
	if nt := mat.NormalTexture; nt != nil && nt.Index != nil {
		out.Normal = textureImage(doc, *nt.Index, dir)
	}
	return out
}

func textureImage(doc *gltf.Document, texIdx int, dir string) image.Image {
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return nil
	}
	data := imageData(doc, *doc.Textures[texIdx].Source, dir)
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// imageData returns the encoded bytes of image i from a buffer view, a data
// URI or a file next to the document.
func imageData(doc *gltf.Document, i int, dir string) []byte {
	if i < 0 || i >= len(doc.Images) {
		return nil
	}
	img := doc.Images[i]

	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil || bv.ByteOffset+bv.ByteLength > len(buf.Data) {
			return nil
		}
		return buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return nil
		}
		return data
	case img.URI != "":
		data, err := os.ReadFile(filepath.Join(dir, img.URI))
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}
