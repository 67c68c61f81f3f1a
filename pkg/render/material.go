package render

import (
	"image"

	"github.com/taigrr/dualraster/pkg/models"
)

// Material is the set of textures a mesh is shaded with. Every field is
// non-nil once built through NewMaterial or LoadMaterial.
type Material struct {
	Diffuse  *Texture
	Normal   *Texture // tangent-space, RGB remapped to [-1, 1]
	Specular *Texture
	Gloss    *Texture // R channel scales the Phong exponent
}

// Neutral textures used when a map is missing.
var (
	defaultDiffuse  = RGB(255, 255, 255)
	defaultNormal   = RGB(128, 128, 255)
	defaultSpecular = RGB(0, 0, 0)
	defaultGloss    = RGB(0, 0, 0)
)

// DefaultMaterial returns white diffuse, a flat normal map and no specular.
func DefaultMaterial() *Material {
	return &Material{
		Diffuse:  NewSolidTexture(defaultDiffuse),
		Normal:   NewSolidTexture(defaultNormal),
		Specular: NewSolidTexture(defaultSpecular),
		Gloss:    NewSolidTexture(defaultGloss),
	}
}

// NewMaterial converts the images decoded by a mesh loader. Missing images
// are replaced by the neutral defaults.
func NewMaterial(m models.Material) *Material {
	return &Material{
		Diffuse:  textureOr(m.Diffuse, defaultDiffuse),
		Normal:   textureOr(m.Normal, defaultNormal),
		Specular: textureOr(m.Specular, defaultSpecular),
		Gloss:    textureOr(m.Gloss, defaultGloss),
	}
}

func textureOr(img image.Image, fallback Color) *Texture {
	if img == nil {
		return NewSolidTexture(fallback)
	}
	return TextureFromImage(img)
}

// MaterialPaths names texture files that override a mesh's own images.
type MaterialPaths struct {
	Diffuse  string
	Normal   string
	Specular string
	Gloss    string
}

// LoadMaterial builds a material from the mesh's images and the given files.
// A file that fails to load is logged and the map keeps its previous value,
// so the material is always usable.
func LoadMaterial(base models.Material, paths MaterialPaths) *Material {
	mat := NewMaterial(base)

	for _, slot := range []struct {
		name string
		path string
		dst  **Texture
	}{
		{"diffuse", paths.Diffuse, &mat.Diffuse},
		{"normal", paths.Normal, &mat.Normal},
		{"specular", paths.Specular, &mat.Specular},
		{"gloss", paths.Gloss, &mat.Gloss},
	} {
		if slot.path == "" {
			continue
		}
		tex, err := LoadTexture(slot.path)
		if err != nil {
			logger.Errorf("%s map: %v", slot.name, err)
			continue
		}
		logger.Infof("loaded %s map %s (%dx%d)", slot.name, slot.path, tex.Width, tex.Height)
		*slot.dst = tex
	}
	return mat
}
