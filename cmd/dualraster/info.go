package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/taigrr/dualraster/pkg/models"
)

// runInfo prints geometry and material statistics of each mesh argument.
func runInfo(ctx *cli.Context) error {
	done, err := setupLogging(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	if ctx.NArg() == 0 {
		return errMissingMesh
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mesh", "Vertices", "Triangles", "Bounds min", "Bounds max", "Maps"})

	for _, path := range ctx.Args() {
		mesh, err := models.Load(path)
		if err != nil {
			return fmt.Errorf("load mesh %s: %w", path, err)
		}
		table.Append(meshRow(mesh))
	}

	table.Render()
	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}

func meshRow(m *models.Mesh) []string {
	maps := ""
	for _, slot := range []struct {
		name string
		set  bool
	}{
		{"diffuse", m.Material.Diffuse != nil},
		{"normal", m.Material.Normal != nil},
		{"specular", m.Material.Specular != nil},
		{"gloss", m.Material.Gloss != nil},
	} {
		if !slot.set {
			continue
		}
		if maps != "" {
			maps += ", "
		}
		maps += slot.name
	}
	if maps == "" {
		maps = "-"
	}

	return []string{
		m.Name,
		fmt.Sprintf("%d", m.VertexCount()),
		fmt.Sprintf("%d", m.TriangleCount()),
		fmt.Sprintf("%.2f %.2f %.2f", m.BoundsMin.X, m.BoundsMin.Y, m.BoundsMin.Z),
		fmt.Sprintf("%.2f %.2f %.2f", m.BoundsMax.X, m.BoundsMax.Y, m.BoundsMax.Z),
		maps,
	}
}
