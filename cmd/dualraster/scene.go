package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/taigrr/dualraster/pkg/math3d"
	"github.com/taigrr/dualraster/pkg/models"
	"github.com/taigrr/dualraster/pkg/render"
)

var errMissingMesh = errors.New("missing mesh file argument")

// sceneFlags returns the flags shared by every rendering command.
func sceneFlags() []cli.Flag {
	def := render.DefaultOptions()
	return []cli.Flag{
		cli.IntFlag{Name: "width", Value: def.Width, Usage: "frame width", EnvVar: "DUALRASTER_WIDTH"},
		cli.IntFlag{Name: "height", Value: def.Height, Usage: "frame height", EnvVar: "DUALRASTER_HEIGHT"},
		cli.Float64Flag{Name: "fov", Value: def.FOV, Usage: "vertical field of view in degrees", EnvVar: "DUALRASTER_FOV"},
		cli.Float64Flag{Name: "near", Value: def.Near, Usage: "near plane distance", EnvVar: "DUALRASTER_NEAR"},
		cli.Float64Flag{Name: "far", Value: def.Far, Usage: "far plane distance", EnvVar: "DUALRASTER_FAR"},
		cli.Float64Flag{Name: "distance", Value: -def.MeshPosition.Z, Usage: "distance of the mesh in front of the camera", EnvVar: "DUALRASTER_DISTANCE"},
		cli.Float64Flag{Name: "rotate-speed", Value: def.RotateSpeed, Usage: "mesh rotation in degrees per second", EnvVar: "DUALRASTER_ROTATE_SPEED"},
		cli.BoolFlag{Name: "no-rotate", Usage: "start with rotation off", EnvVar: "DUALRASTER_NO_ROTATE"},
		cli.IntFlag{Name: "fps", Value: def.TargetFPS, Usage: "target frame rate", EnvVar: "DUALRASTER_FPS"},
		cli.StringFlag{Name: "cull", Value: def.Settings.Cull.String(), Usage: "initial cull mode: backface, frontface or none", EnvVar: "DUALRASTER_CULL"},
		cli.StringFlag{Name: "sample", Value: def.Settings.Sample.String(), Usage: "initial sample mode: point, linear or anisotropic", EnvVar: "DUALRASTER_SAMPLE"},
		cli.StringFlag{Name: "raster", Value: def.Settings.Raster.String(), Usage: "initial rasterizer: hardware or software", EnvVar: "DUALRASTER_RASTER"},
		cli.StringFlag{Name: "clip", Value: def.Settings.Clip.String(), Usage: "clip policy: vertex or guardband", EnvVar: "DUALRASTER_CLIP"},
		cli.StringFlag{Name: "diffuse", Usage: "diffuse map, overrides the mesh texture", EnvVar: "DUALRASTER_DIFFUSE"},
		cli.StringFlag{Name: "normal", Usage: "tangent-space normal map", EnvVar: "DUALRASTER_NORMAL"},
		cli.StringFlag{Name: "specular", Usage: "specular map", EnvVar: "DUALRASTER_SPECULAR"},
		cli.StringFlag{Name: "gloss", Usage: "glossiness map (red channel)", EnvVar: "DUALRASTER_GLOSS"},
		cli.StringFlag{Name: "overlay", Usage: "mesh drawn as a transparent overlay by the GPU path", EnvVar: "DUALRASTER_OVERLAY"},
	}
}

// optionsFromContext reads the scene flags into render options.
func optionsFromContext(ctx *cli.Context) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	opts.FOV = ctx.Float64("fov")
	opts.Near = ctx.Float64("near")
	opts.Far = ctx.Float64("far")
	opts.MeshPosition = math3d.V3(0, 0, -ctx.Float64("distance"))
	opts.RotateSpeed = ctx.Float64("rotate-speed")
	opts.Rotate = !ctx.Bool("no-rotate")
	opts.TargetFPS = ctx.Int("fps")

	if opts.Width <= 0 || opts.Height <= 0 {
		return opts, fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.Near <= 0 || opts.Far <= opts.Near {
		return opts, fmt.Errorf("invalid clip planes: near %v, far %v", opts.Near, opts.Far)
	}

	var err error
	if opts.Settings.Cull, err = parseMode(ctx.String("cull"), render.CullBackface); err != nil {
		return opts, err
	}
	if opts.Settings.Sample, err = parseMode(ctx.String("sample"), render.SamplePoint); err != nil {
		return opts, err
	}
	if opts.Settings.Raster, err = parseMode(ctx.String("raster"), render.RasterHardware); err != nil {
		return opts, err
	}
	if opts.Settings.Clip, err = parseMode(ctx.String("clip"), render.ClipVertex); err != nil {
		return opts, err
	}
	return opts, nil
}

// mode is any of the render mode enums.
type mode[M any] interface {
	comparable
	fmt.Stringer
	Next() M
}

// parseMode matches name against every value of first's cycle.
func parseMode[M mode[M]](name string, first M) (M, error) {
	m := first
	for {
		if strings.EqualFold(m.String(), name) {
			return m, nil
		}
		if m = m.Next(); m == first {
			break
		}
	}
	return first, fmt.Errorf("unknown mode %q", name)
}

// scene is a loaded mesh with its material, ready to hand to a driver.
type scene struct {
	objects []*render.SceneObject
}

// loadScene loads the mesh named by the first argument and the optional
// overlay. Texture failures are logged and replaced by neutral maps; mesh
// failures are returned.
func loadScene(ctx *cli.Context, opts render.Options) (*scene, error) {
	if ctx.NArg() < 1 {
		return nil, errMissingMesh
	}

	obj, err := loadObject(ctx.Args().First(), render.MaterialPaths{
		Diffuse:  ctx.String("diffuse"),
		Normal:   ctx.String("normal"),
		Specular: ctx.String("specular"),
		Gloss:    ctx.String("gloss"),
	}, opts.MeshPosition)
	if err != nil {
		return nil, err
	}
	sc := &scene{objects: []*render.SceneObject{obj}}

	if path := ctx.String("overlay"); path != "" {
		overlay, err := loadObject(path, render.MaterialPaths{}, opts.MeshPosition)
		if err != nil {
			return nil, err
		}
		overlay.Transparent = true
		sc.objects = append(sc.objects, overlay)
	}
	return sc, nil
}

func loadObject(path string, paths render.MaterialPaths, position math3d.Vec3) (*render.SceneObject, error) {
	mesh, err := models.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh %s: %w", path, err)
	}
	logger.Infof("loaded %s: %d vertices, %d triangles", mesh.Name, mesh.VertexCount(), mesh.TriangleCount())

	mat := render.LoadMaterial(mesh.Material, paths)
	return render.NewSceneObject(mesh, mat, position), nil
}

// newDriver builds a camera for opts and a driver over paths with the scene
// objects added.
func newDriver(opts render.Options, sc *scene, paths ...render.Path) (*render.Driver, error) {
	d, err := render.NewDriver(opts.NewCamera(), opts, paths...)
	if err != nil {
		return nil, err
	}
	for _, obj := range sc.objects {
		d.AddObject(obj)
	}
	return d, nil
}
