package main

import (
	"math"

	"github.com/urfave/cli"

	"github.com/taigrr/dualraster/pkg/render"
)

// runSnapshot renders a single software frame to a PNG file.
func runSnapshot(ctx *cli.Context) error {
	done, err := setupLogging(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	opts, err := optionsFromContext(ctx)
	if err != nil {
		return err
	}
	sc, err := loadScene(ctx, opts)
	if err != nil {
		return err
	}

	sw, err := render.NewSoftwarePath(opts.Width, opts.Height, opts.SoftwareClear, opts.Light)
	if err != nil {
		return err
	}
	defer sw.Close()

	opts.Settings.Raster = render.RasterSoftware
	opts.Rotate = true
	d, err := newDriver(opts, sc, sw)
	if err != nil {
		return err
	}

	// Advance the rotation to the requested angle in one step.
	if opts.RotateSpeed != 0 {
		d.Update(ctx.Float64("angle")/opts.RotateSpeed, render.CameraInput{})
	}
	logger.Debugf("rendering at %.1f degrees", d.Angle()*180/math.Pi)

	if err := d.Render(); err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", sw.Stats().Table())

	out := ctx.String("out")
	if err := sw.Framebuffer().SavePNG(out, ctx.Int("scale")); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return nil
}
