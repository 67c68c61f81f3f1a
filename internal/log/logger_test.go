package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSinkAndLevel(t *testing.T) {
	defer func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	}()

	var buf bytes.Buffer
	SetSink(&buf)
	SetLevel(Notice)

	logger := New("test")
	logger.Info("hidden")
	logger.Notice("BACKFACE culling.")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at notice level: %q", out)
	}
	if !strings.Contains(out, "[test] [NOTICE] BACKFACE culling.") {
		t.Errorf("notice message missing or misformatted: %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("frame %d", 3)
	if !strings.Contains(buf.String(), "frame 3") {
		t.Errorf("debug message missing after SetLevel(Debug): %q", buf.String())
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		n    int
		want Level
	}{
		{0, Notice},
		{1, Info},
		{2, Debug},
		{5, Debug},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.n); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}
