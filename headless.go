package panorama

import (
	"fmt"
	"image"
	"time"
)

// Headless hosts a Panorama on a RasterSurface without a window. Each call
// to Frame polls injected input and steps the scheduler, like one vsync
// tick of an interactive host.
type Headless struct {
	p       *Panorama
	surface *RasterSurface
	input   *InjectedInput
	runner  *TestRunner
	shots   screenshotQueue
}

// NewHeadless creates a raster surface of the given size, fills in the
// Surface and Input of opts and constructs the Panorama.
func NewHeadless(opts Options, width, height int) (*Headless, error) {
	h := &Headless{
		surface: NewRasterSurface(width, height),
		input:   NewInjectedInput(),
	}
	opts.Surface = h.surface
	opts.Input = h.input
	p, err := New(opts)
	if err != nil {
		return nil, fmt.Errorf("headless: %w", err)
	}
	h.p = p
	h.shots.format = FormatPNG
	return h, nil
}

// SetScreenshotDir sets where screenshots are written and their format,
// FormatPNG or FormatWebP.
func (h *Headless) SetScreenshotDir(dir, format string) {
	h.shots.dir = dir
	h.shots.format = format
}

// SetTestRunner attaches a script stepped at the start of every frame.
func (h *Headless) SetTestRunner(r *TestRunner) { h.runner = r }

// Panorama implements ScriptTarget.
func (h *Headless) Panorama() *Panorama { return h.p }

// Inject implements ScriptTarget.
func (h *Headless) Inject() *InjectedInput { return h.input }

// Surface returns the raster surface.
func (h *Headless) Surface() *RasterSurface { return h.surface }

// Resize implements ScriptTarget.
func (h *Headless) Resize(width, height int) { h.p.Resize(width, height) }

// Screenshot implements ScriptTarget. The file is written at the end of the
// current frame.
func (h *Headless) Screenshot(label string) { h.shots.add(label) }

// Screenshots returns the paths written so far.
func (h *Headless) Screenshots() []string { return h.shots.written }

// Frame runs one frame at now.
func (h *Headless) Frame(now time.Time) {
	if h.runner != nil {
		h.runner.Step(h)
	}
	h.input.Poll()
	h.p.Scheduler().Step(now)
	h.shots.flush(h.p.log, func() image.Image { return h.surface.Image() })
}

// Done reports whether the attached script has finished.
func (h *Headless) Done() bool {
	return h.runner != nil && h.runner.Done()
}

// Close closes the Panorama.
func (h *Headless) Close() error { return h.p.Close() }
