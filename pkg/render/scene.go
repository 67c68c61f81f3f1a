package render

import (
	"github.com/taigrr/dualraster/pkg/math3d"
	"github.com/taigrr/dualraster/pkg/models"
)

// SceneObject is a mesh placed in the world. All objects share the frame's
// rotation angle about the vertical axis.
type SceneObject struct {
	Name     string
	Mesh     *models.Mesh
	Material *Material
	Position math3d.Vec3

	// Transparent objects are alpha blended by the GPU path and skipped by
	// the software path.
	Transparent bool
}

// NewSceneObject places mesh at position. A nil material becomes the default.
func NewSceneObject(mesh *models.Mesh, mat *Material, position math3d.Vec3) *SceneObject {
	if mat == nil {
		mat = DefaultMaterial()
	}
	return &SceneObject{
		Name:     mesh.Name,
		Mesh:     mesh,
		Material: mat,
		Position: position,
	}
}

// World returns the object's model matrix for the given rotation angle.
func (o *SceneObject) World(angle float64) math3d.Mat4 {
	return math3d.Translate(o.Position).Mul(math3d.RotateY(angle))
}

// WorldBounds returns the world-space box around the rotated mesh.
func (o *SceneObject) WorldBounds(angle float64) AABB {
	box := AABB{Min: o.Mesh.BoundsMin, Max: o.Mesh.BoundsMax}
	return box.Transform(o.World(angle))
}
