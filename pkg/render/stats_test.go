package render

import (
	"strings"
	"testing"
	"time"
)

func TestFrameStatsTable(t *testing.T) {
	s := FrameStats{
		Objects:       1,
		Triangles:     12,
		Clipped:       2,
		Degenerate:    1,
		PixelsTested:  4096,
		DepthRejected: 17,
		PixelsShaded:  2048,
		RenderTime:    3 * time.Millisecond,
	}
	out := s.Table()

	for _, want := range []string{"Stage", "Triangles", "4096", "2048", "Depth rejected", "3ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
