package render

import (
	"math"
	"testing"

	"github.com/taigrr/dualraster/pkg/math3d"
	"github.com/taigrr/dualraster/pkg/models"
)

// ndcVertex builds a vertex given in screen pixels of a width x height buffer.
func ndcVertex(sx, sy float64, width, height int, z, w float64) models.Vertex {
	return models.Vertex{
		Position: math3d.V4(2*sx/float64(width)-1, 1-2*sy/float64(height), z, w),
		Normal:   math3d.V3(0, 0, 1),
		Tangent:  math3d.V3(1, 0, 0),
		ViewDir:  math3d.V3(0, 0, 1),
	}
}

// screenTriangle builds a triangle from three screen points at a fixed depth.
func screenTriangle(p [3]math3d.Vec2, width, height int, z float64) models.Triangle {
	var tri models.Triangle
	for i := range p {
		tri.V[i] = ndcVertex(p[i].X, p[i].Y, width, height, z, 1)
	}
	return tri
}

func createTestRasterizer(width, height int, light Light) (*Rasterizer, *Framebuffer, *DepthBuffer) {
	fb := NewFramebuffer(width, height)
	depth := NewDepthBuffer(width, height)
	return NewRasterizer(fb, depth, light), fb, depth
}

// solidMaterial has a flat normal map and the given diffuse color.
func solidMaterial(c Color) *Material {
	mat := DefaultMaterial()
	mat.Diffuse = NewSolidTexture(c)
	return mat
}

// frontLight shines straight into the screen so a +Z normal is fully lit.
func frontLight() Light {
	return Light{
		Direction: math3d.V3(0, 0, -1),
		Color:     ColorF{1, 1, 1},
		Intensity: 1,
		Shininess: 25,
	}
}

// Counter-clockwise in NDC, so the edge weights of covered pixels are <= 0.
var frontFacing = [3]math3d.Vec2{{X: 10, Y: 10}, {X: 30, Y: 50}, {X: 50, Y: 10}}

// insideAll reports whether pixel (x, y) is strictly inside the triangle p,
// evaluated independently of the rasterizer.
func insideAll(p [3]math3d.Vec2, x, y int) (inside, outside bool) {
	c := math3d.V2(float64(x)+0.5, float64(y)+0.5)
	var w [3]float64
	for i := range p {
		a, b := p[(i+1)%3], p[(i+2)%3]
		w[i] = b.Sub(a).Cross(c.Sub(a))
	}
	const eps = 1e-6
	inside = (w[0] < -eps && w[1] < -eps && w[2] < -eps) || (w[0] > eps && w[1] > eps && w[2] > eps)
	outside = !((w[0] <= eps && w[1] <= eps && w[2] <= eps) || (w[0] >= -eps && w[1] >= -eps && w[2] >= -eps))
	return inside, outside
}

func TestRasterizeTriangleScenario(t *testing.T) {
	const size = 100
	r, fb, depth := createTestRasterizer(size, size, DefaultLight())

	// Specular and gloss are white, so any highlight would show up.
	mat := DefaultMaterial()
	mat.Specular = NewSolidTexture(White)
	mat.Gloss = NewSolidTexture(White)

	tri := screenTriangle(frontFacing, size, size, 0.5)
	r.RasterizeTriangle(&tri, mat, CullBackface)

	// The normal faces the camera and away from the light: ambient only.
	want := ColorF{0.025, 0.025, 0.025}.RGBA()

	written := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			got := fb.GetPixel(x, y)
			inside, outside := insideAll(frontFacing, x, y)

			if got != (Color{}) {
				written++
				if x < 10 || x >= 50 || y < 10 || y >= 50 {
					t.Fatalf("pixel (%d,%d) written outside the bounding box", x, y)
				}
				if got != want {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
				}
			}
			if inside && got == (Color{}) {
				t.Errorf("interior pixel (%d,%d) not written", x, y)
			}
			if outside && got != (Color{}) {
				t.Errorf("exterior pixel (%d,%d) written", x, y)
			}
			if got != (Color{}) && math.Abs(depth.At(x, y)-0.5) > 1e-12 {
				t.Errorf("depth (%d,%d) = %v, want 0.5", x, y, depth.At(x, y))
			}
		}
	}

	if written == 0 {
		t.Fatal("no pixels written")
	}
	if r.Stats.PixelsShaded != written {
		t.Errorf("PixelsShaded = %d, want %d", r.Stats.PixelsShaded, written)
	}
}

func TestRasterizeTriangleCullModes(t *testing.T) {
	const size = 100
	reversed := [3]math3d.Vec2{frontFacing[0], frontFacing[2], frontFacing[1]}

	tests := []struct {
		name   string
		points [3]math3d.Vec2
		cull   CullMode
		drawn  bool
	}{
		{"front face, backface culling", frontFacing, CullBackface, true},
		{"front face, frontface culling", frontFacing, CullFrontface, false},
		{"front face, no culling", frontFacing, CullNone, true},
		{"back face, backface culling", reversed, CullBackface, false},
		{"back face, frontface culling", reversed, CullFrontface, true},
		{"back face, no culling", reversed, CullNone, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _, _ := createTestRasterizer(size, size, DefaultLight())
			tri := screenTriangle(tc.points, size, size, 0.5)
			r.RasterizeTriangle(&tri, DefaultMaterial(), tc.cull)

			if drawn := r.Stats.PixelsShaded > 0; drawn != tc.drawn {
				t.Errorf("drawn = %v (%d pixels), want %v", drawn, r.Stats.PixelsShaded, tc.drawn)
			}
		})
	}
}

func TestRasterizeTriangleDepthOrder(t *testing.T) {
	const size = 64
	full := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 0, Y: 64}, {X: 64, Y: 0}}

	near := screenTriangle(full, size, size, 0.25)
	far := screenTriangle(full, size, size, 0.75)
	red := solidMaterial(RGB(255, 0, 0))
	green := solidMaterial(RGB(0, 255, 0))

	tests := []struct {
		name      string
		first     *models.Triangle
		firstMat  *Material
		second    *models.Triangle
		secondMat *Material
	}{
		{"near first", &near, red, &far, green},
		{"far first", &far, green, &near, red},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb, depth := createTestRasterizer(size, size, frontLight())
			r.RasterizeTriangle(tc.first, tc.firstMat, CullBackface)
			r.RasterizeTriangle(tc.second, tc.secondMat, CullBackface)

			for _, p := range [][2]int{{5, 5}, {20, 10}, {10, 30}} {
				if z := depth.At(p[0], p[1]); math.Abs(z-0.25) > 1e-12 {
					t.Errorf("depth at %v = %v, want 0.25", p, z)
				}
				c := fb.GetPixel(p[0], p[1])
				if c.R < 250 || c.G != 0 {
					t.Errorf("pixel at %v = %v, want the near (red) triangle", p, c)
				}
			}
		})
	}
}

func TestRasterizeTriangleTieKeepsFirst(t *testing.T) {
	const size = 32
	full := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 0, Y: 32}, {X: 32, Y: 0}}
	a := screenTriangle(full, size, size, 0.5)
	b := screenTriangle(full, size, size, 0.5)

	r, fb, _ := createTestRasterizer(size, size, frontLight())
	r.RasterizeTriangle(&a, solidMaterial(RGB(255, 0, 0)), CullBackface)
	r.RasterizeTriangle(&b, solidMaterial(RGB(0, 0, 255)), CullBackface)

	if c := fb.GetPixel(4, 4); c.B != 0 {
		t.Errorf("equal depth overwrote the first triangle: %v", c)
	}
	if r.Stats.DepthRejected == 0 {
		t.Error("DepthRejected = 0, want the second triangle rejected")
	}
}

func TestRasterizeTriangleDegenerate(t *testing.T) {
	const size = 32
	line := [3]math3d.Vec2{{X: 1, Y: 1}, {X: 10, Y: 10}, {X: 20, Y: 20}}
	tri := screenTriangle(line, size, size, 0.5)

	r, fb, _ := createTestRasterizer(size, size, DefaultLight())
	r.RasterizeTriangle(&tri, DefaultMaterial(), CullNone)

	if r.Stats.Degenerate != 1 {
		t.Errorf("Degenerate = %d, want 1", r.Stats.Degenerate)
	}
	for i, c := range fb.Pixels {
		if c != (Color{}) {
			t.Fatalf("pixel %d written by a degenerate triangle", i)
		}
	}
}

func TestInterpolatePerspectiveCorrect(t *testing.T) {
	var tri models.Triangle
	ws := [3]float64{1, 3, 4}
	uvs := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	for i := range tri.V {
		tri.V[i] = models.Vertex{
			Position: math3d.V4(0, 0, 0.5, ws[i]),
			UV:       uvs[i],
			Normal:   math3d.V3(0, 0, 1),
			Tangent:  math3d.V3(1, 0, 0),
			ViewDir:  math3d.V3(0, 0, 1),
		}
	}

	tests := []struct {
		name string
		b    [3]float64
		want math3d.Vec2
	}{
		{"vertex 0", [3]float64{1, 0, 0}, uvs[0]},
		{"vertex 1", [3]float64{0, 1, 0}, uvs[1]},
		{"vertex 2", [3]float64{0, 0, 1}, uvs[2]},
		// (0.5*0/1 + 0.5*1/3) / (0.5/1 + 0.5/3)
		{"edge midpoint", [3]float64{0.5, 0.5, 0}, math3d.V2(0.25, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := interpolate(&tri, tc.b)
			if math.Abs(f.uv.X-tc.want.X) > 1e-12 || math.Abs(f.uv.Y-tc.want.Y) > 1e-12 {
				t.Errorf("uv = %v, want %v", f.uv, tc.want)
			}
			if math.Abs(f.normal.Len()-1) > 1e-12 {
				t.Errorf("normal not unit: %v", f.normal)
			}
		})
	}
}

func TestNewBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		p    [3]math3d.Vec2
		want BoundingBox
	}{
		{"inside", [3]math3d.Vec2{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 30, Y: 50}}, BoundingBox{10, 51, 10, 51}},
		{"fractional", [3]math3d.Vec2{{X: 1.5, Y: 2.7}, {X: 3.2, Y: 2.1}, {X: 2, Y: 4.9}}, BoundingBox{1, 4, 2, 5}},
		{"clamped", [3]math3d.Vec2{{X: -20, Y: -5}, {X: 300, Y: 10}, {X: 50, Y: 500}}, BoundingBox{0, 100, 0, 80}},
		{"off screen", [3]math3d.Vec2{{X: -20, Y: -20}, {X: -10, Y: -20}, {X: -15, Y: -5}}, BoundingBox{0, 0, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewBoundingBox(tc.p[0], tc.p[1], tc.p[2], 100, 80)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
			if got.MinX < 0 || got.MaxX > 100 || got.MinY < 0 || got.MaxY > 80 {
				t.Errorf("box %+v escapes the buffer", got)
			}
		})
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	if !(BoundingBox{0, 0, 0, 10}).Empty() {
		t.Error("zero-width box should be empty")
	}
	if (BoundingBox{0, 1, 0, 1}).Empty() {
		t.Error("single pixel box should not be empty")
	}
}

func TestClipTriangle(t *testing.T) {
	tri := func(ps ...math3d.Vec4) *models.Triangle {
		var out models.Triangle
		for i := range out.V {
			out.V[i].Position = ps[i]
		}
		return &out
	}
	in := math3d.V4(0, 0, 0.5, 1)

	tests := []struct {
		name      string
		tri       *models.Triangle
		vertex    bool
		guardBand bool
	}{
		{"inside", tri(in, math3d.V4(0.5, 0.5, 0.5, 1), math3d.V4(-0.5, 0.5, 0.5, 1)), true, true},
		{"one vertex right of screen", tri(in, math3d.V4(1.5, 0, 0.5, 1), math3d.V4(0, 0.5, 0.5, 1)), false, true},
		{"all vertices above screen", tri(math3d.V4(0, 1.2, 0.5, 1), math3d.V4(0.5, 1.5, 0.5, 1), math3d.V4(-0.5, 2, 0.5, 1)), false, false},
		{"spans left and right", tri(math3d.V4(-2, 0, 0.5, 1), math3d.V4(2, 0, 0.5, 1), math3d.V4(0, 0.5, 0.5, 1)), false, true},
		{"beyond far plane", tri(in, math3d.V4(0, 0, 1.01, 1), in), false, false},
		{"before near plane", tri(in, math3d.V4(0, 0, -0.01, 1), in), false, false},
		{"behind eye", tri(in, math3d.V4(0, 0, 0.5, -1), in), false, false},
		{"not finite", tri(in, math3d.V4(math.Inf(1), 0, 0.5, 1), in), false, false},
		{"on the boundary", tri(math3d.V4(-1, -1, 0, 1), math3d.V4(1, -1, 1, 1), math3d.V4(0, 1, 0.5, 1)), true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClipTriangle(tc.tri, ClipVertex); got != tc.vertex {
				t.Errorf("ClipVertex = %v, want %v", got, tc.vertex)
			}
			if got := ClipTriangle(tc.tri, ClipGuardBand); got != tc.guardBand {
				t.Errorf("ClipGuardBand = %v, want %v", got, tc.guardBand)
			}
		})
	}
}

func TestToScreen(t *testing.T) {
	tests := []struct {
		ndc  math3d.Vec4
		want math3d.Vec2
	}{
		{math3d.V4(-1, 1, 0, 1), math3d.V2(0, 0)},
		{math3d.V4(1, -1, 0, 1), math3d.V2(640, 480)},
		{math3d.V4(0, 0, 0, 1), math3d.V2(320, 240)},
	}
	for _, tc := range tests {
		if got := ToScreen(tc.ndc, 640, 480); got != tc.want {
			t.Errorf("ToScreen(%v) = %v, want %v", tc.ndc, got, tc.want)
		}
	}
}

func TestTransformVertices(t *testing.T) {
	cam := NewCamera(CameraConfig{FOV: math.Pi / 4, Aspect: 1, Near: 0.1, Far: 100})
	src := []models.Vertex{{
		Position: math3d.V4(0, 0, 0, 1),
		Normal:   math3d.V3(0, 0, 1),
		Tangent:  math3d.V3(1, 0, 0),
		UV:       math3d.V2(0.25, 0.75),
	}}

	out := TransformVertices(nil, src, math3d.V3(0, 0, -50), math.Pi/2, cam)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	v := out[0]

	if math.Abs(v.Position.W-50) > 1e-9 {
		t.Errorf("W = %v, want the view depth 50", v.Position.W)
	}
	if math.Abs(v.Position.X) > 1e-9 || math.Abs(v.Position.Y) > 1e-9 {
		t.Errorf("center vertex projected to (%v, %v)", v.Position.X, v.Position.Y)
	}
	if v.Position.Z <= 0 || v.Position.Z >= 1 {
		t.Errorf("Z = %v, want inside (0, 1)", v.Position.Z)
	}
	if !vecApprox(v.Normal, math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("normal = %v, want rotated to +X", v.Normal)
	}
	if !vecApprox(v.Tangent, math3d.V3(0, 0, -1), 1e-9) {
		t.Errorf("tangent = %v, want rotated to -Z", v.Tangent)
	}
	if !vecApprox(v.ViewDir, math3d.V3(0, 0, 50), 1e-9) {
		t.Errorf("view dir = %v, want toward the eye", v.ViewDir)
	}
	if v.UV != src[0].UV {
		t.Errorf("uv = %v, want %v", v.UV, src[0].UV)
	}

	// Source vertices stay untouched and dst is reused.
	if src[0].Position != math3d.V4(0, 0, 0, 1) {
		t.Error("source vertex modified")
	}
	again := TransformVertices(out, src, math3d.V3(0, 0, -50), 0, cam)
	if &again[0] != &out[0] {
		t.Error("dst not reused")
	}
}

func vecApprox(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func BenchmarkRasterizeTriangle(b *testing.B) {
	const size = 256
	r, _, depth := createTestRasterizer(size, size, DefaultLight())
	tri := screenTriangle([3]math3d.Vec2{{X: 8, Y: 8}, {X: 64, Y: 240}, {X: 248, Y: 16}}, size, size, 0.5)
	mat := DefaultMaterial()

	for b.Loop() {
		depth.Reset()
		r.RasterizeTriangle(&tri, mat, CullBackface)
	}
}
