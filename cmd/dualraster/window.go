package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/urfave/cli"

	"github.com/taigrr/dualraster/pkg/gpu"
	"github.com/taigrr/dualraster/pkg/render"
)

// windowKeys maps ebiten keys to driver toggles.
var windowKeys = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyE, keyCommands["e"]},
	{ebiten.KeyC, keyCommands["c"]},
	{ebiten.KeyF, keyCommands["f"]},
	{ebiten.KeyG, keyCommands["g"]},
	{ebiten.KeyR, keyCommands["r"]},
	{ebiten.KeyT, keyCommands["t"]},
}

// windowGame drives both render paths from ebiten's game loop.
type windowGame struct {
	opts      render.Options
	driver    *render.Driver
	hardware  *gpu.HardwarePath
	software  *render.SoftwarePath
	presenter gpu.Presenter

	dragging     bool
	lastX, lastY int
	err          error
}

func (g *windowGame) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			k.cmd(g.driver)
		}
	}

	g.driver.Update(1/float64(ebiten.TPS()), g.cameraInput())
	return nil
}

func (g *windowGame) cameraInput() render.CameraInput {
	var in render.CameraInput
	in.Forward = keyAxis(ebiten.KeyW, ebiten.KeyS)
	in.Right = keyAxis(ebiten.KeyD, ebiten.KeyA)
	in.Up = keyAxis(ebiten.KeySpace, ebiten.KeyQ)

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			in.Yaw = float64(x - g.lastX)
			in.Pitch = float64(y - g.lastY)
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y
	return in
}

func keyAxis(pos, neg ebiten.Key) float64 {
	var v float64
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	return v
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	s := g.driver.Settings()
	if s.Raster == render.RasterHardware {
		g.hardware.Bind(screen)
	}
	if err := g.driver.Render(); err != nil {
		g.err = err
		return
	}
	if s.Raster == render.RasterSoftware {
		g.presenter.Draw(screen, g.software.Framebuffer())
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  %s  %s  %s  clip %s",
		ebiten.ActualFPS(), s.Raster, s.Cull, s.Sample, s.Clip))
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// runWindow opens a desktop window with both render paths attached.
func runWindow(ctx *cli.Context) error {
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
	hw := gpu.NewHardwarePath(opts.HardwareClear, opts.Light)

	d, err := newDriver(opts, sc, hw, sw)
	if err != nil {
		return err
	}
	g := &windowGame{opts: opts, driver: d, hardware: hw, software: sw}
	defer func() {
		g.presenter.Close()
		if err := d.Close(); err != nil {
			logger.Errorf("close: %v", err)
		}
	}()

	ebiten.SetWindowTitle("dualraster - " + sc.objects[0].Name)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetTPS(opts.TargetFPS)
	logger.Noticef("%s rasterizer.", d.Settings().Raster)

	return ebiten.RunGame(g)
}
