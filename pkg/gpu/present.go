package gpu

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/dualraster/pkg/render"
)

// Presenter copies a software framebuffer onto an ebiten image.
type Presenter struct {
	img *ebiten.Image
	pix []byte
}

// Draw uploads fb and draws it scaled to fill dst.
func (p *Presenter) Draw(dst *ebiten.Image, fb *render.Framebuffer) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}
	if p.img == nil || p.img.Bounds().Dx() != fb.Width || p.img.Bounds().Dy() != fb.Height {
		if p.img != nil {
			p.img.Deallocate()
		}
		p.img = ebiten.NewImage(fb.Width, fb.Height)
		p.pix = make([]byte, 4*fb.Width*fb.Height)
	}

	fb.CopyRGBA(p.pix)
	p.img.WritePixels(p.pix)

	b := dst.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx())/float64(fb.Width), float64(b.Dy())/float64(fb.Height))
	dst.DrawImage(p.img, op)
}

// Close releases the upload image.
func (p *Presenter) Close() {
	if p.img != nil {
		p.img.Deallocate()
		p.img = nil
	}
}
