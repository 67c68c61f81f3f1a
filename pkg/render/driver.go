package render

import (
	"errors"
	"math"
)

// Driver advances the scene once per frame and hands it to the path selected
// by the current settings. Mode toggles may only be called from the goroutine
// that calls Render.
type Driver struct {
	camera   *Camera
	paths    map[RasterMode]Path
	objects  []*SceneObject
	settings Settings

	angle       float64 // radians
	rotateSpeed float64 // radians per second
	rotating    bool

	frame Frame
}

// NewDriver creates a driver over the given paths. If the configured raster
// mode has no path the first available one is used.
func NewDriver(cam *Camera, opts Options, paths ...Path) (*Driver, error) {
	if cam == nil {
		return nil, ErrNoCamera
	}
	if len(paths) == 0 {
		return nil, ErrNoPath
	}

	d := &Driver{
		camera:      cam,
		paths:       make(map[RasterMode]Path, len(paths)),
		settings:    opts.Settings,
		rotateSpeed: opts.RotateSpeed * math.Pi / 180,
		rotating:    opts.Rotate,
	}
	for _, p := range paths {
		d.paths[p.Mode()] = p
	}
	if _, ok := d.paths[d.settings.Raster]; !ok {
		d.settings.Raster = paths[0].Mode()
	}
	return d, nil
}

// AddObject appends an object to the scene.
func (d *Driver) AddObject(obj *SceneObject) {
	d.objects = append(d.objects, obj)
}

// Objects returns the scene objects in draw order.
func (d *Driver) Objects() []*SceneObject { return d.objects }

// Camera returns the driven camera.
func (d *Driver) Camera() *Camera { return d.camera }

// Settings returns the current mode snapshot.
func (d *Driver) Settings() Settings { return d.settings }

// Angle returns the current rotation angle in radians.
func (d *Driver) Angle() float64 { return d.angle }

// Rotating reports whether the scene rotation is on.
func (d *Driver) Rotating() bool { return d.rotating }

// ActivePath returns the path the next Render will use.
func (d *Driver) ActivePath() Path { return d.paths[d.settings.Raster] }

// Path returns the path registered for mode, if any.
func (d *Driver) Path(mode RasterMode) (Path, bool) {
	p, ok := d.paths[mode]
	return p, ok
}

// Update advances the rotation angle and the camera by dt seconds.
func (d *Driver) Update(dt float64, in CameraInput) {
	if d.rotating {
		d.angle = math.Mod(d.angle+d.rotateSpeed*dt, 2*math.Pi)
	}
	d.camera.Update(dt, in)
}

// Render draws the scene with the active path.
func (d *Driver) Render() error {
	p := d.ActivePath()
	if p == nil {
		return ErrPathUnavailable
	}
	d.frame = Frame{
		Camera:   d.camera,
		Objects:  d.objects,
		Angle:    d.angle,
		Settings: d.settings,
	}
	return p.Render(&d.frame)
}

// CycleSampleMode switches to the next texture filter.
func (d *Driver) CycleSampleMode() SampleMode {
	d.settings.Sample = d.settings.Sample.Next()
	logger.Noticef("%s Sampling.", d.settings.Sample)
	return d.settings.Sample
}

// CycleCullMode switches to the next winding filter.
func (d *Driver) CycleCullMode() CullMode {
	d.settings.Cull = d.settings.Cull.Next()
	logger.Noticef("%s culling.", d.settings.Cull)
	return d.settings.Cull
}

// CycleRasterMode switches to the next path. A mode without a registered path
// is skipped.
func (d *Driver) CycleRasterMode() RasterMode {
	next := d.settings.Raster.Next()
	for next != d.settings.Raster {
		if _, ok := d.paths[next]; ok {
			break
		}
		logger.Warningf("%s rasterizer unavailable.", next)
		next = next.Next()
	}
	d.settings.Raster = next
	logger.Noticef("%s rasterizer.", d.settings.Raster)
	return d.settings.Raster
}

// CycleClipPolicy switches between the per-vertex and guard-band clip.
func (d *Driver) CycleClipPolicy() ClipPolicy {
	d.settings.Clip = d.settings.Clip.Next()
	logger.Noticef("%s clipping.", d.settings.Clip)
	return d.settings.Clip
}

// ToggleRotation starts or stops the scene rotation.
func (d *Driver) ToggleRotation() bool {
	d.rotating = !d.rotating
	logger.Noticef("Rotation %s.", onOff(d.rotating))
	return d.rotating
}

// ToggleTransparent shows or hides transparent objects.
func (d *Driver) ToggleTransparent() bool {
	d.settings.ShowTransparent = !d.settings.ShowTransparent
	logger.Noticef("FireFX %s.", onOff(d.settings.ShowTransparent))
	return d.settings.ShowTransparent
}

// Close releases every path.
func (d *Driver) Close() error {
	var errs []error
	for _, p := range d.paths {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
