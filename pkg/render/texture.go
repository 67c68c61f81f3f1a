package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Texture holds a decoded RGBA image for sampling.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// NewSolidTexture creates a 1x1 texture of color c.
func NewSolidTexture(c Color) *Texture {
	t := NewTexture(1, 1)
	t.Pixels[0] = c
	return t
}

// LoadTexture decodes an image file (PNG, JPEG, BMP, TIFF or WebP).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts any image into a texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	tex := NewTexture(b.Dx(), b.Dy())
	for y := range tex.Height {
		row := rgba.Pix[y*rgba.Stride:]
		for x := range tex.Width {
			p := row[x*4 : x*4+4]
			tex.Pixels[y*tex.Width+x] = Color{p[0], p[1], p[2], p[3]}
		}
	}
	return tex
}

// SetPixel sets the texel at (x, y).
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// Index returns the texel index for normalized coordinates:
// floor(u*Width) + floor(v*Height)*Width, with each axis clamped into the
// image so coordinates on or past the edges reuse the border texel.
func (t *Texture) Index(u, v float64) int {
	x := clampInt(int(math.Floor(u*float64(t.Width))), 0, t.Width-1)
	y := clampInt(int(math.Floor(v*float64(t.Height))), 0, t.Height-1)
	return x + y*t.Width
}

// Sample returns the nearest texel at (u, v) as normalized RGB.
// (0, 0) is the top-left texel.
func (t *Texture) Sample(u, v float64) ColorF {
	return ColorFFrom(t.Pixels[t.Index(u, v)])
}

// ToImage converts the texture back into an image.RGBA.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i, c := range t.Pixels {
		j := i * 4
		img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
