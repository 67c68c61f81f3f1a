package render

import (
	"math"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// Options configures the scene, the camera and the frame driver.
type Options struct {
	// Frame dims.
	Width  int
	Height int

	// Camera projection. FOV is the vertical field of view in degrees.
	FOV  float64
	Near float64
	Far  float64

	// Camera start pose.
	CameraPosition math3d.Vec3

	// World position of the main mesh.
	MeshPosition math3d.Vec3

	// Rotation about the vertical axis in degrees per second.
	RotateSpeed float64
	Rotate      bool

	// Camera input smoothing runs at this fixed step.
	TargetFPS int
	MoveSpeed float64 // world units per second
	LookSpeed float64 // radians per unit of look input

	// Clear colors of the two paths.
	SoftwareClear Color
	HardwareClear Color

	// Initial modes.
	Settings Settings

	Light Light
}

// DefaultOptions returns a 640x480 view of a mesh 50 units in front of the
// camera, turning at -45 degrees per second.
func DefaultOptions() Options {
	return Options{
		Width:          640,
		Height:         480,
		FOV:            45,
		Near:           0.1,
		Far:            100,
		CameraPosition: math3d.V3(0, 0, 0),
		MeshPosition:   math3d.V3(0, 0, -50),
		RotateSpeed:    -45,
		Rotate:         true,
		TargetFPS:      60,
		MoveSpeed:      20,
		LookSpeed:      0.005,
		SoftwareClear:  Hex(0x1A1A1A),
		HardwareClear:  RGB(25, 25, 25),
		Settings:       DefaultSettings(),
		Light:          DefaultLight(),
	}
}

// AspectRatio returns Width / Height.
func (o Options) AspectRatio() float64 {
	if o.Height == 0 {
		return 1
	}
	return float64(o.Width) / float64(o.Height)
}

// NewCamera builds the camera described by the options.
func (o Options) NewCamera() *Camera {
	return NewCamera(CameraConfig{
		Position:  o.CameraPosition,
		FOV:       o.FOV * math.Pi / 180,
		Aspect:    o.AspectRatio(),
		Near:      o.Near,
		Far:       o.Far,
		TargetFPS: o.TargetFPS,
		MoveSpeed: o.MoveSpeed,
		LookSpeed: o.LookSpeed,
	})
}
