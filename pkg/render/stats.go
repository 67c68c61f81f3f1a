package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// FrameStats counts the work done by the software path in one frame.
type FrameStats struct {
	Objects       int // objects drawn
	ObjectsCulled int // objects rejected by the frustum before the vertex stage
	Triangles     int
	Clipped       int
	Degenerate    int
	PixelsTested  int
	DepthRejected int
	PixelsShaded  int
	RenderTime    time.Duration
}

// Table renders the statistics as a text table.
func (s FrameStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Counter", "Value"})
	table.Append([]string{"Objects", "Drawn", fmt.Sprintf("%d", s.Objects)})
	table.Append([]string{"", "Frustum culled", fmt.Sprintf("%d", s.ObjectsCulled)})
	table.Append([]string{"Triangles", "Submitted", fmt.Sprintf("%d", s.Triangles)})
	table.Append([]string{"", "Clipped", fmt.Sprintf("%d", s.Clipped)})
	table.Append([]string{"", "Degenerate", fmt.Sprintf("%d", s.Degenerate)})
	table.Append([]string{"Pixels", "Tested", fmt.Sprintf("%d", s.PixelsTested)})
	table.Append([]string{"", "Depth rejected", fmt.Sprintf("%d", s.DepthRejected)})
	table.Append([]string{"", "Shaded", fmt.Sprintf("%d", s.PixelsShaded)})
	table.SetFooter([]string{"", "Render time", s.RenderTime.String()})

	table.Render()
	return buf.String()
}
