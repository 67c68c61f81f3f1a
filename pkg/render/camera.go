package render

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// CameraConfig holds the construction parameters of a Camera.
// FOV, Near and Far cannot change afterwards.
type CameraConfig struct {
	Position math3d.Vec3
	Yaw      float64
	Pitch    float64

	FOV    float64 // vertical, radians
	Aspect float64
	Near   float64
	Far    float64

	TargetFPS int
	MoveSpeed float64
	LookSpeed float64
}

// CameraInput is the input accumulated by a frontend since the last Update.
// Move components are key axes in [-1, 1]; Yaw and Pitch are raw look deltas
// (mouse pixels or key steps) scaled by the camera's look speed.
type CameraInput struct {
	Forward float64
	Right   float64
	Up      float64
	Yaw     float64
	Pitch   float64
}

// smoothAxis eases one value toward a target with a critically damped spring.
type smoothAxis struct {
	value    float64
	velocity float64
	spring   harmonica.Spring
}

func newSmoothAxis(fps int, frequency float64) smoothAxis {
	return smoothAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0)}
}

func (a *smoothAxis) step(target float64) float64 {
	a.value, a.velocity = a.spring.Update(a.value, a.velocity, target)
	return a.value
}

// Camera owns the view and projection transforms. Its pose only changes in
// Update, which recomputes every derived matrix once.
type Camera struct {
	position math3d.Vec3
	yaw      float64
	pitch    float64

	fov    float64
	aspect float64
	near   float64
	far    float64

	forward     math3d.Vec3
	right       math3d.Vec3
	up          math3d.Vec3
	worldToView math3d.Mat4
	viewToWorld math3d.Mat4
	projection  math3d.Mat4

	moveSpeed float64
	lookSpeed float64

	// Smoothed velocities (forward, right, up) and look targets.
	velocity  [3]smoothAxis
	yawAxis   smoothAxis
	pitchAxis smoothAxis
	yawGoal   float64
	pitchGoal float64
}

// NewCamera creates a camera and computes its matrices.
func NewCamera(cfg CameraConfig) *Camera {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 60
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = 1
	}

	c := &Camera{
		position:  cfg.Position,
		yaw:       cfg.Yaw,
		pitch:     clampPitch(cfg.Pitch),
		fov:       cfg.FOV,
		aspect:    cfg.Aspect,
		near:      cfg.Near,
		far:       cfg.Far,
		moveSpeed: cfg.MoveSpeed,
		lookSpeed: cfg.LookSpeed,
		yawAxis:   newSmoothAxis(cfg.TargetFPS, 8.0),
		pitchAxis: newSmoothAxis(cfg.TargetFPS, 8.0),
	}
	for i := range c.velocity {
		// Frequency 4.0 = moderate speed, damping 1.0 = no overshoot
		c.velocity[i] = newSmoothAxis(cfg.TargetFPS, 4.0)
	}
	c.yawAxis.value, c.yawGoal = c.yaw, c.yaw
	c.pitchAxis.value, c.pitchGoal = c.pitch, c.pitch

	c.projection = math3d.Perspective(c.fov, c.aspect, c.near, c.far)
	c.computeView()
	return c
}

// Update applies the input accumulated since the previous frame. dt is the
// frame time in seconds.
func (c *Camera) Update(dt float64, in CameraInput) {
	c.yawGoal -= in.Yaw * c.lookSpeed
	c.pitchGoal = clampPitch(c.pitchGoal - in.Pitch*c.lookSpeed)
	c.yaw = c.yawAxis.step(c.yawGoal)
	c.pitch = clampPitch(c.pitchAxis.step(c.pitchGoal))

	vf := c.velocity[0].step(in.Forward)
	vr := c.velocity[1].step(in.Right)
	vu := c.velocity[2].step(in.Up)

	step := c.moveSpeed * dt
	c.position = c.position.
		Add(c.forward.Scale(vf * step)).
		Add(c.right.Scale(vr * step)).
		Add(math3d.Up().Scale(vu * step))

	c.computeView()
}

// SetAspectRatio follows a resized presentation surface.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect <= 0 || aspect == c.aspect {
		return
	}
	c.aspect = aspect
	c.projection = math3d.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *Camera) computeView() {
	cy, sy := math.Cos(c.yaw), math.Sin(c.yaw)
	cp, sp := math.Cos(c.pitch), math.Sin(c.pitch)

	c.forward = math3d.V3(-sy*cp, sp, -cy*cp)
	c.right = math3d.V3(cy, 0, -sy)
	c.up = c.right.Cross(c.forward)

	c.worldToView = math3d.RotateX(-c.pitch).
		Mul(math3d.RotateY(-c.yaw)).
		Mul(math3d.Translate(c.position.Negate()))
	c.viewToWorld = math3d.FromAxes(c.right, c.up, c.forward.Negate(), c.position)
}

func clampPitch(p float64) float64 {
	const maxPitch = math.Pi/2 - 0.01
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

// Position returns the camera position in world space.
func (c *Camera) Position() math3d.Vec3 { return c.position }

// Yaw returns the rotation about the vertical axis in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the look up/down angle in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 { return c.forward }

// Right returns the unit right vector.
func (c *Camera) Right() math3d.Vec3 { return c.right }

// Up returns the unit up vector of the view.
func (c *Camera) Up() math3d.Vec3 { return c.up }

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// Near returns the near plane distance.
func (c *Camera) Near() float64 { return c.near }

// Far returns the far plane distance.
func (c *Camera) Far() float64 { return c.far }

// WorldToView returns the view matrix.
func (c *Camera) WorldToView() math3d.Mat4 { return c.worldToView }

// ViewToWorld returns the inverse of the view matrix.
func (c *Camera) ViewToWorld() math3d.Mat4 { return c.viewToWorld }

// Projection returns the projection matrix.
func (c *Camera) Projection() math3d.Mat4 { return c.projection }

// ViewProjection returns Projection * WorldToView.
func (c *Camera) ViewProjection() math3d.Mat4 {
	return c.projection.Mul(c.worldToView)
}

// WorldViewProjection returns Projection * WorldToView * world.
func (c *Camera) WorldViewProjection(world math3d.Mat4) math3d.Mat4 {
	return c.ViewProjection().Mul(world)
}

// Frustum returns the view frustum planes in world space.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjection())
}
