package render

import (
	"github.com/taigrr/dualraster/pkg/math3d"
	"github.com/taigrr/dualraster/pkg/models"
)

// TransformVertices runs the vertex stage over src and returns dst resized to
// len(src). Each vertex is rotated about the vertical axis by angle, moved to
// position, given a view direction toward the camera, projected and divided by
// w. Position.W keeps the clip-space w for perspective-correct interpolation.
func TransformVertices(dst, src []models.Vertex, position math3d.Vec3, angle float64, cam *Camera) []models.Vertex {
	if cap(dst) < len(src) {
		dst = make([]models.Vertex, len(src))
	}
	dst = dst[:len(src)]

	rot := math3d.RotateY(angle)
	world := math3d.Translate(position).Mul(rot)
	viewProj := cam.ViewProjection()
	eye := cam.Position()

	for i := range src {
		v := &src[i]
		wp := world.MulVec3(v.Position.Vec3())

		dst[i] = models.Vertex{
			Position: viewProj.MulVec4(math3d.Point(wp)).PerspectiveDivide(),
			UV:       v.UV,
			Normal:   rot.MulVec3Dir(v.Normal),
			Tangent:  rot.MulVec3Dir(v.Tangent),
			ViewDir:  eye.Sub(wp),
		}
	}
	return dst
}

// ClipTriangle reports whether a triangle in normalized device coordinates
// survives the frustum test of the given policy.
func ClipTriangle(tri *models.Triangle, policy ClipPolicy) bool {
	var outside [4]int // left, right, bottom, top

	for i := range tri.V {
		p := tri.V[i].Position
		if !p.IsFinite() || p.W <= 0 || p.Z < 0 || p.Z > 1 {
			return false
		}

		offX := p.X < -1 || p.X > 1
		offY := p.Y < -1 || p.Y > 1
		if policy == ClipVertex {
			if offX || offY {
				return false
			}
			continue
		}

		if p.X < -1 {
			outside[0]++
		} else if p.X > 1 {
			outside[1]++
		}
		if p.Y < -1 {
			outside[2]++
		} else if p.Y > 1 {
			outside[3]++
		}
	}

	for _, n := range outside {
		if n == 3 {
			return false
		}
	}
	return true
}

// ToScreen maps NDC x/y to pixel coordinates with y pointing down.
func ToScreen(p math3d.Vec4, width, height int) math3d.Vec2 {
	return math3d.V2(
		(1+p.X)/2*float64(width),
		(1-p.Y)/2*float64(height),
	)
}
