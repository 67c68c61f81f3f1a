package render

import (
	"time"
)

// Frame is everything a path needs to draw one image.
type Frame struct {
	Camera   *Camera
	Objects  []*SceneObject
	Angle    float64 // rotation about the vertical axis, radians
	Settings Settings
}

// Path is one way of turning a Frame into pixels.
type Path interface {
	Mode() RasterMode
	Render(f *Frame) error
	Close() error
}

// SoftwarePath rasterizes frames on the CPU into its own color and depth
// buffers.
type SoftwarePath struct {
	fb     *Framebuffer
	depth  *DepthBuffer
	raster *Rasterizer
	clear  Color
	stats  FrameStats
}

// NewSoftwarePath allocates buffers of the given size.
func NewSoftwarePath(width, height int, clear Color, light Light) (*SoftwarePath, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	fb := NewFramebuffer(width, height)
	depth := NewDepthBuffer(width, height)
	return &SoftwarePath{
		fb:     fb,
		depth:  depth,
		raster: NewRasterizer(fb, depth, light),
		clear:  clear,
	}, nil
}

// Mode implements Path.
func (p *SoftwarePath) Mode() RasterMode { return RasterSoftware }

// Framebuffer returns the color buffer of the last frame.
func (p *SoftwarePath) Framebuffer() *Framebuffer { return p.fb }

// Depth returns the depth buffer of the last frame.
func (p *SoftwarePath) Depth() *DepthBuffer { return p.depth }

// Stats returns the counters of the last frame.
func (p *SoftwarePath) Stats() FrameStats { return p.stats }

// Resize reallocates both buffers. The next Render repaints them.
func (p *SoftwarePath) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	p.fb.Resize(width, height)
	p.depth.Resize(width, height)
	return nil
}

// Render clears both buffers and draws every opaque object whose world bounds
// touch the view frustum.
func (p *SoftwarePath) Render(f *Frame) error {
	if f.Camera == nil {
		return ErrNoCamera
	}
	start := time.Now()

	p.raster.Stats = FrameStats{}
	p.fb.Clear(p.clear)
	p.depth.Reset()

	frustum := f.Camera.Frustum()
	for _, obj := range f.Objects {
		if obj.Transparent || obj.Mesh == nil {
			continue
		}
		if !frustum.IntersectAABB(obj.WorldBounds(f.Angle)) {
			p.raster.Stats.ObjectsCulled++
			continue
		}
		p.raster.Stats.Objects++
		p.raster.DrawMesh(obj, f.Angle, f.Camera, f.Settings)
	}

	p.raster.Stats.RenderTime = time.Since(start)
	p.stats = p.raster.Stats
	return nil
}

// Close implements Path. CPU buffers need no explicit release.
func (p *SoftwarePath) Close() error { return nil }
