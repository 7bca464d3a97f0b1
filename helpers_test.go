package panorama

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// recordingSurface captures draw calls without rendering.
type recordingSurface struct {
	w, h    int
	source  image.Image
	clears  int
	draws   int
	last    []SliceProjection
	resizes int
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}

func (s *recordingSurface) SetSource(img image.Image) error {
	s.source = img
	return nil
}

func (s *recordingSurface) Clear() { s.clears++ }

func (s *recordingSurface) DrawSlices(slices []SliceProjection) {
	s.draws++
	s.last = append(s.last[:0], slices...)
}

// solidImage returns a w x h image filled with c.
func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b, a := c.RGBA()
		img.Pix[i] = uint8(r >> 8)
		img.Pix[i+1] = uint8(g >> 8)
		img.Pix[i+2] = uint8(b >> 8)
		img.Pix[i+3] = uint8(a >> 8)
	}
	return img
}

// testOptions returns defaults with quality degradation off and logging
// captured.
func testOptions(surface Surface, log *bytes.Buffer) Options {
	opts := DefaultOptions()
	opts.Surface = surface
	opts.SilentDegradeQualityIfNeeded = false
	opts.LogOutput = log
	return opts
}

// newLoaded builds a Panorama on an 800x600 recording surface with a
// 3600x1800 image already set.
func newLoaded(t *testing.T, mutate func(*Options)) (*Panorama, *recordingSurface) {
	t.Helper()
	surface := newRecordingSurface(800, 600)
	var log bytes.Buffer
	opts := testOptions(surface, &log)
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.SetImage(image.NewRGBA(image.Rect(0, 0, 3600, 1800))); err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	return p, surface
}

// stepper yields synthetic frame times 1/60 s apart.
type stepper struct {
	now time.Time
}

func newStepper() *stepper {
	return &stepper{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *stepper) next() time.Time {
	s.now = s.now.Add(DefaultFrameInterval)
	return s.now
}

// pendingTicks returns the pending scheduler callbacks of p, not counting
// the quality sampler.
func pendingTicks(p *Panorama) int {
	n := p.Scheduler().Pending()
	if p.quality.running {
		n--
	}
	return n
}
