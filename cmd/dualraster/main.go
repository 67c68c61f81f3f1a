// dualraster renders a textured, normal-mapped mesh with either a GPU-backed
// path or a software rasterizer and switches between them at runtime.
//
// Controls (view and window):
//
//	E           - Toggle hardware / software rasterizer
//	C           - Cycle cull mode (backface, frontface, none)
//	F           - Cycle sample mode (point, linear, anisotropic)
//	G           - Toggle clip policy (per-vertex, guard band)
//	R           - Toggle rotation
//	T           - Toggle the transparent overlay
//	W/A/S/D     - Move the camera
//	Space/Q     - Move up/down
//	Mouse drag  - Look around
//	Esc         - Quit
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "dualraster"
	app.Usage = "render a mesh on the GPU or with a software rasterizer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-file",
			Usage:  "write log output to this file",
			EnvVar: "DUALRASTER_LOG_FILE",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "view",
			Usage:     "render in the terminal with the software rasterizer",
			ArgsUsage: "mesh.glb|mesh.gltf|mesh.obj",
			Flags:     sceneFlags(),
			Action:    runView,
		},
		{
			Name:  "window",
			Usage: "open a window that can switch between the GPU and software paths",
			Description: `
Both render paths draw the same scene. Press E to switch between them, C to
cycle cull modes and F to cycle texture filtering. The transparent overlay is
only drawn by the GPU path.`,
			ArgsUsage: "mesh.glb|mesh.gltf|mesh.obj",
			Flags:     sceneFlags(),
			Action:    runWindow,
		},
		{
			Name:      "snapshot",
			Usage:     "render one frame with the software rasterizer and save it as PNG",
			ArgsUsage: "mesh.glb|mesh.gltf|mesh.obj",
			Flags: append(sceneFlags(),
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "integer upscale factor of the saved image",
				},
				cli.Float64Flag{
					Name:  "angle",
					Usage: "rotation of the mesh about the vertical axis in degrees",
				},
			),
			Action: runSnapshot,
		},
		{
			Name:      "info",
			Usage:     "print mesh statistics",
			ArgsUsage: "mesh.glb|mesh.gltf|mesh.obj ...",
			Action:    runInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
