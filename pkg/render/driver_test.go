package render

import (
	"errors"
	"math"
	"testing"
)

// recordPath remembers the frames it was asked to render.
type recordPath struct {
	mode     RasterMode
	frames   []Frame
	closed   bool
	closeErr error
}

func (p *recordPath) Mode() RasterMode { return p.mode }

func (p *recordPath) Render(f *Frame) error {
	p.frames = append(p.frames, *f)
	return nil
}

func (p *recordPath) Close() error {
	p.closed = true
	return p.closeErr
}

func TestNewDriverErrors(t *testing.T) {
	if _, err := NewDriver(testCamera(), DefaultOptions()); !errors.Is(err, ErrNoPath) {
		t.Errorf("no paths: err = %v, want ErrNoPath", err)
	}
	if _, err := NewDriver(nil, DefaultOptions(), &recordPath{}); !errors.Is(err, ErrNoCamera) {
		t.Errorf("no camera: err = %v, want ErrNoCamera", err)
	}
}

func TestDriverFallsBackToAvailablePath(t *testing.T) {
	sw := &recordPath{mode: RasterSoftware}
	d, err := NewDriver(testCamera(), DefaultOptions(), sw)
	if err != nil {
		t.Fatal(err)
	}
	if d.Settings().Raster != RasterSoftware {
		t.Fatalf("raster = %s, want SOFTWARE", d.Settings().Raster)
	}

	// The hardware path is missing, so cycling stays put.
	if got := d.CycleRasterMode(); got != RasterSoftware {
		t.Errorf("CycleRasterMode = %s, want SOFTWARE", got)
	}
}

func TestDriverCycleRasterMode(t *testing.T) {
	hw := &recordPath{mode: RasterHardware}
	sw := &recordPath{mode: RasterSoftware}
	d, err := NewDriver(testCamera(), DefaultOptions(), hw, sw)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	d.CycleRasterMode()
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}

	if len(hw.frames) != 1 || len(sw.frames) != 1 {
		t.Errorf("hardware rendered %d frames, software %d; want 1 each", len(hw.frames), len(sw.frames))
	}
	if d.ActivePath() != sw {
		t.Error("active path is not the software path")
	}
}

func TestDriverSettingsSnapshot(t *testing.T) {
	sw := &recordPath{mode: RasterSoftware}
	opts := DefaultOptions()
	opts.Settings.Raster = RasterSoftware
	d, err := NewDriver(testCamera(), opts, sw)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	d.CycleCullMode()
	d.CycleSampleMode()
	d.CycleClipPolicy()
	d.ToggleTransparent()
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}

	first, second := sw.frames[0].Settings, sw.frames[1].Settings
	if first != opts.Settings {
		t.Errorf("first frame settings = %+v, want %+v", first, opts.Settings)
	}
	if second.Cull != CullFrontface || second.Sample != SampleLinear || second.Clip != ClipGuardBand || second.ShowTransparent {
		t.Errorf("second frame settings = %+v", second)
	}
	if first.Cull != CullBackface {
		t.Error("toggle leaked into an earlier frame")
	}
}

func TestDriverRotation(t *testing.T) {
	sw := &recordPath{mode: RasterSoftware}
	d, err := NewDriver(testCamera(), DefaultOptions(), sw)
	if err != nil {
		t.Fatal(err)
	}

	d.Update(1, CameraInput{})
	if want := -math.Pi / 4; math.Abs(d.Angle()-want) > 1e-12 {
		t.Errorf("angle after 1s = %v, want %v", d.Angle(), want)
	}

	if d.ToggleRotation() {
		t.Fatal("ToggleRotation should turn rotation off")
	}
	before := d.Angle()
	d.Update(1, CameraInput{})
	if d.Angle() != before {
		t.Errorf("angle moved while rotation is off: %v -> %v", before, d.Angle())
	}

	// Angle stays within one turn.
	d.ToggleRotation()
	for range 20 {
		d.Update(1, CameraInput{})
	}
	if math.Abs(d.Angle()) >= 2*math.Pi {
		t.Errorf("angle %v not wrapped", d.Angle())
	}

	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if got := sw.frames[0].Angle; got != d.Angle() {
		t.Errorf("frame angle = %v, want %v", got, d.Angle())
	}
}

func TestDriverClose(t *testing.T) {
	boom := errors.New("boom")
	hw := &recordPath{mode: RasterHardware, closeErr: boom}
	sw := &recordPath{mode: RasterSoftware}
	d, err := NewDriver(testCamera(), DefaultOptions(), hw, sw)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Close(); !errors.Is(err, boom) {
		t.Errorf("Close = %v, want wrapped boom", err)
	}
	if !hw.closed || !sw.closed {
		t.Error("not every path was closed")
	}
}
