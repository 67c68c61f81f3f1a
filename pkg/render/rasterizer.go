// Package render is the software half of the dual-path renderer: camera,
// texture sampling, the triangle rasterizer with its depth buffer and shading,
// and the frame driver that picks between render paths every frame.
package render

import (
	"math"

	"github.com/taigrr/dualraster/pkg/math3d"
	"github.com/taigrr/dualraster/pkg/models"
)

// Triangles with less than this much doubled screen area are skipped; their
// barycentric weights would divide by (nearly) zero.
const degenerateArea = 1e-9

// Rasterizer draws meshes into a color buffer and a depth buffer.
// It keeps no state between triangles besides reusable scratch space.
type Rasterizer struct {
	fb    *Framebuffer
	depth *DepthBuffer
	light Light

	verts []models.Vertex // vertex stage output, reused across meshes
	tri   models.Triangle

	Stats FrameStats
}

// NewRasterizer creates a rasterizer writing into fb and depth, which must
// have the same dimensions.
func NewRasterizer(fb *Framebuffer, depth *DepthBuffer, light Light) *Rasterizer {
	return &Rasterizer{fb: fb, depth: depth, light: light}
}

// BoundingBox is a pixel rectangle; Max values are exclusive.
type BoundingBox struct {
	MinX, MaxX int
	MinY, MaxY int
}

// NewBoundingBox returns the pixels touched by the three screen points,
// clamped to [0,width) x [0,height).
func NewBoundingBox(p0, p1, p2 math3d.Vec2, width, height int) BoundingBox {
	w, h := float64(width), float64(height)
	return BoundingBox{
		MinX: int(clampF(math.Floor(min3(p0.X, p1.X, p2.X)), 0, w)),
		MaxX: int(clampF(math.Floor(max3(p0.X, p1.X, p2.X))+1, 0, w)),
		MinY: int(clampF(math.Floor(min3(p0.Y, p1.Y, p2.Y)), 0, h)),
		MaxY: int(clampF(math.Floor(max3(p0.Y, p1.Y, p2.Y))+1, 0, h)),
	}
}

// Empty reports whether the box contains no pixel.
func (b BoundingBox) Empty() bool {
	return b.MinX >= b.MaxX || b.MinY >= b.MaxY
}

// edge holds A, B, C of the edge function A*x + B*y + C, which equals
// cross(p1-p0, p-p0) for the edge p0 -> p1.
type edge struct {
	a, b, c float64
}

func newEdge(p0, p1 math3d.Vec2) edge {
	return edge{
		a: p0.Y - p1.Y,
		b: p1.X - p0.X,
		c: p0.X*p1.Y - p1.X*p0.Y,
	}
}

func (e edge) at(x, y float64) float64 {
	return e.a*x + e.b*y + e.c
}

// covers applies the cull mode to the three edge weights of a pixel.
func covers(w0, w1, w2 float64, mode CullMode) bool {
	neg := w0 <= 0 && w1 <= 0 && w2 <= 0
	switch mode {
	case CullBackface:
		return neg
	case CullFrontface:
		return w0 >= 0 && w1 >= 0 && w2 >= 0
	default:
		return neg || (w0 >= 0 && w1 >= 0 && w2 >= 0)
	}
}

// DrawMesh runs the vertex stage for obj and rasterizes its faces in index
// order.
func (r *Rasterizer) DrawMesh(obj *SceneObject, angle float64, cam *Camera, s Settings) {
	mesh := obj.Mesh
	r.verts = TransformVertices(r.verts, mesh.Vertices, obj.Position, angle, cam)

	for i := range mesh.Faces {
		r.Stats.Triangles++
		mesh.LoadTriangle(i, r.verts, &r.tri)
		if !ClipTriangle(&r.tri, s.Clip) {
			r.Stats.Clipped++
			continue
		}
		r.RasterizeTriangle(&r.tri, obj.Material, s.Cull)
	}
}

// RasterizeTriangle fills the pixels of one triangle whose vertices are in
// normalized device coordinates with their clip-space w kept in Position.W.
func (r *Rasterizer) RasterizeTriangle(tri *models.Triangle, mat *Material, cull CullMode) {
	width, height := r.fb.Width, r.fb.Height

	var sv [3]math3d.Vec2
	for i := range sv {
		sv[i] = ToScreen(tri.V[i].Position, width, height)
	}

	// Edge i is opposite vertex i
	e0 := newEdge(sv[1], sv[2])
	e1 := newEdge(sv[2], sv[0])
	e2 := newEdge(sv[0], sv[1])

	if math.Abs(e0.at(sv[0].X, sv[0].Y)) < degenerateArea {
		r.Stats.Degenerate++
		return
	}

	box := NewBoundingBox(sv[0], sv[1], sv[2], width, height)
	z0, z1, z2 := tri.V[0].Position.Z, tri.V[1].Position.Z, tri.V[2].Position.Z

	for y := box.MinY; y < box.MaxY; y++ {
		py := float64(y) + 0.5
		for x := box.MinX; x < box.MaxX; x++ {
			px := float64(x) + 0.5
			r.Stats.PixelsTested++

			w0, w1, w2 := e0.at(px, py), e1.at(px, py), e2.at(px, py)
			if !covers(w0, w1, w2, cull) {
				continue
			}

			total := w0 + w1 + w2
			b := [3]float64{w0 / total, w1 / total, w2 / total}

			z := 1 / (b[0]/z0 + b[1]/z1 + b[2]/z2)
			idx := x + y*width
			if !r.depth.TestAndSet(idx, z) {
				r.Stats.DepthRejected++
				continue
			}

			frag := interpolate(tri, b)
			r.fb.Pixels[idx] = r.shade(&frag, mat).RGBA()
			r.Stats.PixelsShaded++
		}
	}
}

// fragment is the perspective-correct attribute set of one pixel.
type fragment struct {
	uv      math3d.Vec2
	normal  math3d.Vec3
	tangent math3d.Vec3
	viewDir math3d.Vec3
}

// interpolate weights attribute/w by the screen barycentrics b and multiplies
// the sums by the interpolated w. Directions are renormalized.
func interpolate(tri *models.Triangle, b [3]float64) fragment {
	var f fragment
	var invW float64

	for i := range tri.V {
		v := &tri.V[i]
		k := b[i] / v.Position.W
		invW += k
		f.uv = f.uv.Add(v.UV.Scale(k))
		f.normal = f.normal.Add(v.Normal.Scale(k))
		f.tangent = f.tangent.Add(v.Tangent.Scale(k))
		f.viewDir = f.viewDir.Add(v.ViewDir.Scale(k))
	}

	w := 1 / invW
	f.uv = f.uv.Scale(w)
	f.normal = f.normal.Scale(w).Normalize()
	f.tangent = f.tangent.Scale(w).Normalize()
	f.viewDir = f.viewDir.Scale(w).Normalize()
	return f
}

// shade builds the tangent frame, perturbs the normal with the normal map and
// evaluates the light.
func (r *Rasterizer) shade(f *fragment, mat *Material) ColorF {
	u, v := f.uv.X, f.uv.Y

	nm := mat.Normal.Sample(u, v)
	local := math3d.V3(2*nm.R-1, 2*nm.G-1, 2*nm.B-1)
	normal := math3d.TangentBasis(f.normal, f.tangent).MulVec3(local).Normalize()

	return r.light.Shade(Surface{
		Diffuse:  mat.Diffuse.Sample(u, v),
		Specular: mat.Specular.Sample(u, v),
		Gloss:    mat.Gloss.Sample(u, v).R,
		Normal:   normal,
		ViewDir:  f.viewDir,
	})
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
