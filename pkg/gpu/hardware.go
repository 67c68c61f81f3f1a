// Package gpu is the hardware half of the dual-path renderer. Triangles are
// transformed and lit per vertex on the CPU, then filled, textured and
// blended by the GPU through ebiten.
package gpu

import (
	"cmp"
	"errors"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/dualraster/internal/log"
	"github.com/taigrr/dualraster/pkg/math3d"
	"github.com/taigrr/dualraster/pkg/models"
	"github.com/taigrr/dualraster/pkg/render"
)

var logger = log.New("gpu")

// ErrNoTarget is returned by Render before Bind was called.
var ErrNoTarget = errors.New("gpu: no render target bound")

// DrawTriangles takes 16-bit indices.
const maxBatchVertices = 1<<16 - 1

// transparentAlpha is the opacity of objects flagged transparent.
const transparentAlpha = 0.5

// triangle is one lit, projected triangle waiting to be sorted and drawn.
type triangle struct {
	v     [3]ebiten.Vertex
	depth float64 // mean NDC z, larger is farther
	tex   *render.Texture
}

// HardwarePath draws frames onto an ebiten image. There is no depth buffer:
// triangles are sorted back to front per frame, opaque ones first.
type HardwarePath struct {
	target *ebiten.Image
	clear  color.RGBA
	light  render.Light

	textures map[*render.Texture]*ebiten.Image

	// Per-frame scratch.
	verts   []models.Vertex
	opaque  []triangle
	blended []triangle
	batch   []ebiten.Vertex
	indices []uint16
}

// NewHardwarePath creates a path that clears to the given color.
func NewHardwarePath(clear render.Color, light render.Light) *HardwarePath {
	return &HardwarePath{
		clear:    clear,
		light:    light,
		textures: make(map[*render.Texture]*ebiten.Image),
	}
}

// Mode implements render.Path.
func (p *HardwarePath) Mode() render.RasterMode { return render.RasterHardware }

// Bind sets the image the next Render draws into, normally the screen handed
// to ebiten's Draw.
func (p *HardwarePath) Bind(target *ebiten.Image) {
	p.target = target
}

// Render clears the bound target and draws every object of the frame.
func (p *HardwarePath) Render(f *render.Frame) error {
	if p.target == nil {
		return ErrNoTarget
	}
	if f.Camera == nil {
		return render.ErrNoCamera
	}

	b := p.target.Bounds()
	p.target.Fill(p.clear)

	p.opaque = p.opaque[:0]
	p.blended = p.blended[:0]
	for _, obj := range f.Objects {
		if obj.Mesh == nil {
			continue
		}
		if !obj.Transparent {
			p.opaque = p.collect(p.opaque, obj, f, b.Dx(), b.Dy(), 1)
		} else if f.Settings.ShowTransparent {
			p.blended = p.collect(p.blended, obj, f, b.Dx(), b.Dy(), transparentAlpha)
		}
	}

	filter := Filter(f.Settings.Sample)
	p.draw(sortBackToFront(p.opaque), filter)
	p.draw(sortBackToFront(p.blended), filter)
	return nil
}

// collect runs the vertex stage for obj and appends its visible triangles,
// lit per vertex, in target pixel coordinates.
func (p *HardwarePath) collect(dst []triangle, obj *render.SceneObject, f *render.Frame, width, height int, alpha float32) []triangle {
	mesh := obj.Mesh
	mat := obj.Material
	if mat == nil {
		mat = render.DefaultMaterial()
	}
	tex := mat.Diffuse

	p.verts = render.TransformVertices(p.verts, mesh.Vertices, obj.Position, f.Angle, f.Camera)

	var tri models.Triangle
	for i := range mesh.Faces {
		mesh.LoadTriangle(i, p.verts, &tri)
		// The GPU clips x and y itself.
		if !render.ClipTriangle(&tri, render.ClipGuardBand) {
			continue
		}

		var s [3]math3d.Vec2
		for k := range s {
			s[k] = render.ToScreen(tri.V[k].Position, width, height)
		}
		if !f.Settings.Cull.Keeps(s[1].Sub(s[0]).Cross(s[2].Sub(s[0]))) {
			continue
		}

		out := triangle{tex: tex}
		for k := range tri.V {
			v := &tri.V[k]
			lit := p.light.Shade(render.Surface{
				Diffuse: render.ColorF{R: 1, G: 1, B: 1},
				Normal:  v.Normal.Normalize(),
				ViewDir: v.ViewDir.Normalize(),
			})
			out.v[k] = ebiten.Vertex{
				DstX:   float32(s[k].X),
				DstY:   float32(s[k].Y),
				SrcX:   float32(v.UV.X * float64(tex.Width)),
				SrcY:   float32(v.UV.Y * float64(tex.Height)),
				ColorR: float32(lit.R),
				ColorG: float32(lit.G),
				ColorB: float32(lit.B),
				ColorA: alpha,
			}
			out.depth += v.Position.Z / 3
		}
		dst = append(dst, out)
	}
	return dst
}

// sortBackToFront orders triangles farthest first. Equal depths keep their
// submission order.
func sortBackToFront(tris []triangle) []triangle {
	slices.SortStableFunc(tris, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
	return tris
}

// draw submits triangles in order, batching runs that share a texture.
func (p *HardwarePath) draw(tris []triangle, filter ebiten.Filter) {
	op := &ebiten.DrawTrianglesOptions{
		Filter:  filter,
		Address: ebiten.AddressRepeat,
	}

	var current *render.Texture
	flush := func() {
		if len(p.batch) == 0 {
			return
		}
		p.target.DrawTriangles(p.batch, p.indices, p.texture(current), op)
		p.batch = p.batch[:0]
		p.indices = p.indices[:0]
	}

	for i := range tris {
		t := &tris[i]
		if t.tex != current || len(p.batch)+3 > maxBatchVertices {
			flush()
			current = t.tex
		}
		base := uint16(len(p.batch))
		p.batch = append(p.batch, t.v[:]...)
		p.indices = append(p.indices, base, base+1, base+2)
	}
	flush()
}

// texture returns the GPU copy of tex, uploading it on first use.
func (p *HardwarePath) texture(tex *render.Texture) *ebiten.Image {
	if img, ok := p.textures[tex]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(tex.ToImage())
	p.textures[tex] = img
	logger.Debugf("uploaded %dx%d texture", tex.Width, tex.Height)
	return img
}

// Close releases every uploaded texture.
func (p *HardwarePath) Close() error {
	for tex, img := range p.textures {
		img.Deallocate()
		delete(p.textures, tex)
	}
	return nil
}

// Filter maps a sample mode onto ebiten's texture filters. Ebiten has no
// anisotropic filter, so it falls back to linear.
func Filter(mode render.SampleMode) ebiten.Filter {
	if mode == render.SamplePoint {
		return ebiten.FilterNearest
	}
	return ebiten.FilterLinear
}
