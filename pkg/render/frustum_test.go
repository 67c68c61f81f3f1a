package render

import (
	"math"
	"testing"

	"github.com/taigrr/dualraster/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", plane.Normal.Len())
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func testCamera() *Camera {
	return NewCamera(CameraConfig{
		Position: math3d.V3(0, 0, 0),
		FOV:      math.Pi / 4,
		Aspect:   1,
		Near:     0.1,
		Far:      100,
	})
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testCamera().Frustum()

	tests := []struct {
		name  string
		point math3d.Vec3
		want  bool
	}{
		{"straight ahead", math3d.V3(0, 0, -10), true},
		{"just past near", math3d.V3(0, 0, -0.2), true},
		{"before near", math3d.V3(0, 0, -0.05), false},
		{"beyond far", math3d.V3(0, 0, -150), false},
		{"behind", math3d.V3(0, 0, 10), false},
		{"far left", math3d.V3(-50, 0, -10), false},
		{"above", math3d.V3(0, 50, -10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	f := testCamera().Frustum()

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"in front", AABB{Min: math3d.V3(-1, -1, -15), Max: math3d.V3(1, 1, -5)}, true},
		{"behind", AABB{Min: math3d.V3(-1, -1, 5), Max: math3d.V3(1, 1, 15)}, false},
		{"straddles left plane", AABB{Min: math3d.V3(-30, -1, -11), Max: math3d.V3(-3, 1, -9)}, true},
		{"past far plane", AABB{Min: math3d.V3(-1, -1, -300), Max: math3d.V3(1, 1, -200)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectAABB(tc.box); got != tc.want {
				t.Errorf("IntersectAABB = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, -2, -3), Max: math3d.V3(1, 2, 3)}
	got := box.Transform(math3d.Translate(math3d.V3(0, 0, -50)).Mul(math3d.RotateY(math.Pi / 2)))

	want := AABB{Min: math3d.V3(-3, -2, -51), Max: math3d.V3(3, 2, -49)}
	const eps = 1e-9
	if got.Min.Sub(want.Min).Len() > eps || got.Max.Sub(want.Max).Len() > eps {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}
}
