package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// objReader accumulates the coordinate lists of a Wavefront OBJ file and
// deduplicates the v/vt/vn combinations faces refer to.
type objReader struct {
	name      string
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3

	mesh  *Mesh
	index map[[3]int]int
}

// LoadOBJ loads a Wavefront OBJ file. Polygons are fan-triangulated, missing
// normals and tangents are generated, and V is flipped so (0,0) is the top-left
// texel like glTF.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads OBJ text from r.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	rd := &objReader{
		name:  name,
		mesh:  NewMesh(name),
		index: make(map[[3]int]int),
	}

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 || strings.HasPrefix(tokens[0], "#") {
			continue
		}

		var err error
		switch tokens[0] {
		case "v":
			var v math3d.Vec3
			if v, err = parseVec3(tokens); err == nil {
				rd.positions = append(rd.positions, v)
			}
		case "vt":
			var v math3d.Vec2
			if v, err = parseVec2(tokens); err == nil {
				rd.uvs = append(rd.uvs, math3d.V2(v.X, 1-v.Y))
			}
		case "vn":
			var v math3d.Vec3
			if v, err = parseVec3(tokens); err == nil {
				rd.normals = append(rd.normals, v)
			}
		case "f":
			err = rd.parseFace(tokens)
		}
		if err != nil {
			return nil, rd.emitError(lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj %s: %w", name, err)
	}

	if err := rd.mesh.Validate(); err != nil {
		return nil, err
	}
	rd.mesh.ensureFrame()
	rd.mesh.CalculateBounds()
	return rd.mesh, nil
}

func (r *objReader) emitError(line int, err error) error {
	return fmt.Errorf("[%s: %d] %w", r.name, line, err)
}

func (r *objReader) parseFace(tokens []string) error {
	if len(tokens) < 4 {
		return fmt.Errorf("%w: face needs at least 3 vertices, got %d", ErrInvalidIndices, len(tokens)-1)
	}

	corners := make([]int, 0, len(tokens)-1)
	for arg, tok := range tokens[1:] {
		idx, err := r.corner(tok)
		if err != nil {
			return fmt.Errorf("face argument %d: %w", arg, err)
		}
		corners = append(corners, idx)
	}

	for i := 1; i+1 < len(corners); i++ {
		r.mesh.Faces = append(r.mesh.Faces, Face{V: [3]int{corners[0], corners[i], corners[i+1]}})
	}
	return nil
}

// corner resolves one "v/vt/vn" token to a mesh vertex index.
func (r *objReader) corner(tok string) (int, error) {
	parts := strings.Split(tok, "/")
	key := [3]int{-1, -1, -1}
	lens := [3]int{len(r.positions), len(r.uvs), len(r.normals)}

	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		off, err := selectCoordIndex(parts[i], lens[i])
		if err != nil {
			return 0, err
		}
		key[i] = off
	}
	if key[0] < 0 {
		return 0, fmt.Errorf("%w: missing vertex index in %q", ErrInvalidIndices, tok)
	}

	if idx, ok := r.index[key]; ok {
		return idx, nil
	}

	v := Vertex{Position: math3d.Point(r.positions[key[0]])}
	if key[1] >= 0 {
		v.UV = r.uvs[key[1]]
	}
	if key[2] >= 0 {
		v.Normal = r.normals[key[2]].Normalize()
	}

	idx := len(r.mesh.Vertices)
	r.mesh.Vertices = append(r.mesh.Vertices, v)
	r.index[key] = idx
	return idx, nil
}

// selectCoordIndex converts a 1-based or negative (relative) OBJ index.
func selectCoordIndex(tok string, listLen int) (int, error) {
	index, err := strconv.Atoi(tok)
	if err != nil {
		return -1, err
	}

	off := index - 1
	if index < 0 {
		off = listLen + index
	}
	if off < 0 || off >= listLen {
		return -1, fmt.Errorf("%w: index %d out of bounds (%d entries)", ErrInvalidIndices, index, listLen)
	}
	return off, nil
}

func parseVec3(tokens []string) (math3d.Vec3, error) {
	if len(tokens) < 4 {
		return math3d.Vec3{}, fmt.Errorf("'%s' expects 3 arguments, got %d", tokens[0], len(tokens)-1)
	}

	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

func parseVec2(tokens []string) (math3d.Vec2, error) {
	if len(tokens) < 3 {
		return math3d.Vec2{}, fmt.Errorf("'%s' expects 2 arguments, got %d", tokens[0], len(tokens)-1)
	}

	u, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return math3d.Vec2{}, err
	}
	v, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return math3d.Vec2{}, err
	}
	return math3d.V2(u, v), nil
}
