package panorama

import (
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Viewer hosts a Panorama in an ebiten game loop. Update polls input and
// steps the scheduler on every vsync tick; Draw presents the canvas.
type Viewer struct {
	p       *Panorama
	surface *EbitenSurface
	input   *EbitenInput
	runner  *TestRunner
	shots   screenshotQueue
	overlay *debugOverlay

	// ShowDebug draws the fps and slice count overlay.
	ShowDebug bool
	// ClearColor fills the screen around the canvas.
	ClearColor color.Color

	layoutW, layoutH int
	resized          bool
}

// NewViewer wraps p, which must have been created with surface and input.
func NewViewer(p *Panorama, surface *EbitenSurface, input *EbitenInput) *Viewer {
	return &Viewer{
		p:          p,
		surface:    surface,
		input:      input,
		ClearColor: color.Black,
		shots:      screenshotQueue{format: FormatPNG},
	}
}

// SetScreenshotDir sets where screenshots are written and their format.
func (v *Viewer) SetScreenshotDir(dir, format string) {
	v.shots.dir = dir
	v.shots.format = format
}

// SetTestRunner attaches a script stepped at the start of every Update.
func (v *Viewer) SetTestRunner(r *TestRunner) { v.runner = r }

// Panorama implements ScriptTarget.
func (v *Viewer) Panorama() *Panorama { return v.p }

// Inject implements ScriptTarget.
func (v *Viewer) Inject() *InjectedInput { return &v.input.InjectedInput }

// Screenshot implements ScriptTarget.
func (v *Viewer) Screenshot(label string) { v.shots.add(label) }

// Resize implements ScriptTarget. The window follows on the next layout.
func (v *Viewer) Resize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.resized {
		// Calibration must land before this frame's tick.
		v.resized = false
		v.input.SetBounds(v.layoutW, v.layoutH)
		v.p.Resize(v.layoutW, v.layoutH)
	}
	if v.runner != nil {
		v.runner.Step(v)
		if v.runner.Done() && v.input.Pending() == 0 && len(v.shots.labels) == 0 {
			return ebiten.Termination
		}
	}
	v.input.Poll()
	v.p.Scheduler().Step(time.Now())
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.ClearColor)
	screen.DrawImage(v.surface.Image(), nil)
	v.shots.flush(v.p.log, func() image.Image { return readImage(v.surface.Image()) })
	if v.ShowDebug {
		if v.overlay == nil {
			v.overlay = newDebugOverlay()
		}
		v.overlay.update(v.p, time.Now())
		v.overlay.draw(screen)
	}
}

// Layout implements ebiten.Game. The canvas follows the window size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.layoutW || outsideHeight != v.layoutH {
		v.layoutW, v.layoutH = outsideWidth, outsideHeight
		v.resized = true
	}
	return outsideWidth, outsideHeight
}
