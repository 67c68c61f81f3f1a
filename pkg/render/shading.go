package render

import (
	"math"

	"github.com/taigrr/dualraster/pkg/math3d"
)

// Light is the scene's single directional light.
type Light struct {
	// Direction points from the light into the scene.
	Direction math3d.Vec3
	Color     ColorF
	Intensity float64
	Ambient   float64
	// Shininess scales the glossiness sample into the Phong exponent.
	Shininess float64
}

// DefaultLight returns a white light shining down and away from the viewer.
func DefaultLight() Light {
	return Light{
		Direction: math3d.V3(0.577, -0.577, 0.577),
		Color:     ColorF{1, 1, 1},
		Intensity: 7 / math.Pi,
		Ambient:   0.025,
		Shininess: 25,
	}
}

// Surface is everything the shading function needs for one pixel.
type Surface struct {
	Diffuse  ColorF
	Specular ColorF
	Gloss    float64
	Normal   math3d.Vec3 // unit shading normal
	ViewDir  math3d.Vec3 // unit vector from the surface toward the eye
}

// Shade evaluates Lambert diffuse plus Phong specular and normalizes the
// result so no channel exceeds one.
func (l Light) Shade(s Surface) ColorF {
	lambert := math.Max(s.Normal.Negate().Dot(l.Direction), 0)
	color := s.Diffuse.Mul(l.Color).Scale(l.Intensity * lambert).AddScalar(l.Ambient)

	reflected := l.Direction.Reflect(s.Normal)
	if d := reflected.Dot(s.ViewDir); d > 0 {
		color = color.Add(s.Specular.Scale(math.Pow(d, s.Gloss*l.Shininess)))
	}
	return color.MaxToOne()
}
