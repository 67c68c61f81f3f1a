package render

import "fmt"

// SampleMode selects texture filtering. The software path always point-samples;
// the GPU path maps linear and anisotropic onto its filters.
type SampleMode int

const (
	SamplePoint SampleMode = iota
	SampleLinear
	SampleAnisotropic
	sampleModeCount
)

func (m SampleMode) String() string {
	switch m {
	case SamplePoint:
		return "POINT"
	case SampleLinear:
		return "LINEAR"
	case SampleAnisotropic:
		return "ANISOTROPIC"
	}
	return fmt.Sprintf("SampleMode(%d)", int(m))
}

// Next cycles to the following mode.
func (m SampleMode) Next() SampleMode {
	return (m + 1) % sampleModeCount
}

// CullMode decides which winding survives coverage testing.
//
// Screen space has y pointing down, so a triangle that is counter-clockwise in
// NDC (the front face of glTF and OBJ meshes) produces non-positive edge
// weights. CullBackface keeps those pixels, CullFrontface keeps the opposite
// winding and CullNone keeps both.
type CullMode int

const (
	CullBackface CullMode = iota
	CullFrontface
	CullNone
	cullModeCount
)

func (m CullMode) String() string {
	switch m {
	case CullBackface:
		return "BACKFACE"
	case CullFrontface:
		return "FRONTFACE"
	case CullNone:
		return "NONE"
	}
	return fmt.Sprintf("CullMode(%d)", int(m))
}

// Next cycles to the following mode.
func (m CullMode) Next() CullMode {
	return (m + 1) % cullModeCount
}

// Keeps reports whether a whole triangle survives the mode, given its signed
// screen area cross(p1-p0, p2-p0) with y pointing down. Paths that cull per
// triangle instead of per pixel use this.
func (m CullMode) Keeps(area float64) bool {
	switch m {
	case CullBackface:
		return area < 0
	case CullFrontface:
		return area > 0
	default:
		return area != 0
	}
}

// RasterMode selects the render path.
type RasterMode int

const (
	RasterHardware RasterMode = iota
	RasterSoftware
	rasterModeCount
)

func (m RasterMode) String() string {
	switch m {
	case RasterHardware:
		return "HARDWARE"
	case RasterSoftware:
		return "SOFTWARE"
	}
	return fmt.Sprintf("RasterMode(%d)", int(m))
}

// Next cycles to the following mode.
func (m RasterMode) Next() RasterMode {
	return (m + 1) % rasterModeCount
}

// ClipPolicy controls the per-vertex frustum rejection of the software path.
type ClipPolicy int

const (
	// ClipVertex drops a triangle as soon as one vertex leaves the canonical
	// volume, even when its interior is visible.
	ClipVertex ClipPolicy = iota
	// ClipGuardBand only drops triangles with a vertex outside the depth range
	// or behind the eye, or with all vertices beyond the same side plane.
	// Off-screen parts are cut by the clamped bounding box.
	ClipGuardBand
	clipPolicyCount
)

func (p ClipPolicy) String() string {
	switch p {
	case ClipVertex:
		return "VERTEX"
	case ClipGuardBand:
		return "GUARDBAND"
	}
	return fmt.Sprintf("ClipPolicy(%d)", int(p))
}

// Next cycles to the following policy.
func (p ClipPolicy) Next() ClipPolicy {
	return (p + 1) % clipPolicyCount
}

// Settings is the snapshot of user-selected modes handed to a render path for
// one frame. It is a value; paths never see later toggles mid-frame.
type Settings struct {
	Sample SampleMode
	Cull   CullMode
	Raster RasterMode
	Clip   ClipPolicy

	// ShowTransparent enables objects flagged transparent. Only the GPU path
	// draws them.
	ShowTransparent bool
}

// DefaultSettings returns point sampling, backface culling, the hardware path
// and the strict per-vertex clip.
func DefaultSettings() Settings {
	return Settings{
		Sample:          SamplePoint,
		Cull:            CullBackface,
		Raster:          RasterHardware,
		Clip:            ClipVertex,
		ShowTransparent: true,
	}
}
