package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/urfave/cli"

	"github.com/taigrr/dualraster/pkg/render"
)

// command is a mode change queued by the event goroutine and applied by the
// render loop between frames.
type command func(d *render.Driver)

// keyCommands maps key names to driver toggles.
var keyCommands = map[string]command{
	"e": func(d *render.Driver) { d.CycleRasterMode() },
	"c": func(d *render.Driver) { d.CycleCullMode() },
	"f": func(d *render.Driver) { d.CycleSampleMode() },
	"g": func(d *render.Driver) { d.CycleClipPolicy() },
	"r": func(d *render.Driver) { d.ToggleRotation() },
	"t": func(d *render.Driver) { d.ToggleTransparent() },
}

// termInput accumulates camera input between frames. Terminals rarely report
// key releases, so movement axes decay instead of resetting.
type termInput struct {
	forward, right, up float64
	yaw, pitch         float64

	dragging bool
	lastX    int
	lastY    int
}

func (in *termInput) take() render.CameraInput {
	out := render.CameraInput{
		Forward: in.forward,
		Right:   in.right,
		Up:      in.up,
		Yaw:     in.yaw,
		Pitch:   in.pitch,
	}
	in.forward *= 0.9
	in.right *= 0.9
	in.up *= 0.9
	in.yaw, in.pitch = 0, 0
	return out
}

// runView renders with the software path into the terminal using half-block
// cells, two framebuffer rows per terminal row.
func runView(ctx *cli.Context) error {
	done, err := setupLogging(ctx, true)
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

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	opts.Width, opts.Height = render.TerminalSize(cols, rows)

	sw, err := render.NewSoftwarePath(opts.Width, opts.Height, opts.SoftwareClear, opts.Light)
	if err != nil {
		return err
	}
	opts.Settings.Raster = render.RasterSoftware
	d, err := newDriver(opts, sc, sw)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	// Any-event mouse tracking in SGR mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	commands := make(chan command, 16)
	resized := make(chan [2]int, 1)
	var in termInput
	inputs := make(chan func(*termInput), 64)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case resized <- [2]int{ev.Width, ev.Height}:
				default:
				}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					inputs <- func(in *termInput) { in.forward = 1 }
				case ev.MatchString("s", "down"):
					inputs <- func(in *termInput) { in.forward = -1 }
				case ev.MatchString("a", "left"):
					inputs <- func(in *termInput) { in.right = -1 }
				case ev.MatchString("d", "right"):
					inputs <- func(in *termInput) { in.right = 1 }
				case ev.MatchString("space"):
					inputs <- func(in *termInput) { in.up = 1 }
				case ev.MatchString("q"):
					inputs <- func(in *termInput) { in.up = -1 }
				default:
					for key, cmd := range keyCommands {
						if ev.MatchString(key) {
							commands <- cmd
						}
					}
				}

			case uv.MouseClickEvent:
				x, y := ev.X, ev.Y
				inputs <- func(in *termInput) { in.dragging, in.lastX, in.lastY = true, x, y }

			case uv.MouseReleaseEvent:
				inputs <- func(in *termInput) { in.dragging = false }

			case uv.MouseMotionEvent:
				x, y := ev.X, ev.Y
				inputs <- func(in *termInput) {
					if !in.dragging {
						return
					}
					// One cell is roughly eight pixels wide and sixteen tall.
					in.yaw += float64(x-in.lastX) * 8
					in.pitch += float64(y-in.lastY) * 16
					in.lastX, in.lastY = x, y
				}
			}
		}
	}()

	target := time.Second / time.Duration(max(opts.TargetFPS, 1))
	last := time.Now()

	for {
		select {
		case <-runCtx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(last).Seconds(), 0.1)
		last = now

	drain:
		for {
			select {
			case cmd := <-commands:
				cmd(d)
			case apply := <-inputs:
				apply(&in)
			case size := <-resized:
				cols, rows = size[0], size[1]
				term.Erase()
				term.Resize(cols, rows)
				w, h := render.TerminalSize(cols, rows)
				if err := sw.Resize(w, h); err != nil {
					return err
				}
				d.Camera().SetAspectRatio(float64(w) / float64(h))
			default:
				break drain
			}
		}

		d.Update(dt, in.take())
		if err := d.Render(); err != nil {
			return err
		}

		sw.Framebuffer().Draw(term, uv.Rect(0, 0, cols, rows))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < target {
			time.Sleep(target - elapsed)
		}
	}
}
