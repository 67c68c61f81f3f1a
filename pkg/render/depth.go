package render

import "math"

// DepthBuffer stores the nearest depth written to each pixel of the frame.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64
}

// NewDepthBuffer allocates a buffer already reset to +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{Width: width, Height: height, Values: make([]float64, width*height)}
	d.Reset()
	return d
}

// Resize reallocates the buffer when the dimensions change.
func (d *DepthBuffer) Resize(width, height int) {
	if width == d.Width && height == d.Height {
		return
	}
	d.Width, d.Height = width, height
	d.Values = make([]float64, width*height)
	d.Reset()
}

// Reset sets every pixel to +Inf. It always clears the whole buffer.
func (d *DepthBuffer) Reset() {
	if len(d.Values) == 0 {
		return
	}
	d.Values[0] = math.Inf(1)
	for filled := 1; filled < len(d.Values); filled *= 2 {
		copy(d.Values[filled:], d.Values[:filled])
	}
}

// TestAndSet stores z at pixel i and returns true when z is strictly nearer
// than the stored depth. Ties keep the earlier write.
func (d *DepthBuffer) TestAndSet(i int, z float64) bool {
	if z < d.Values[i] {
		d.Values[i] = z
		return true
	}
	return false
}

// At returns the depth stored at (x, y).
func (d *DepthBuffer) At(x, y int) float64 {
	return d.Values[y*d.Width+x]
}
