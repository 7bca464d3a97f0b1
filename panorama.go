package panorama

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"
)

// State is the render loop state.
type State uint8

const (
	StateIdle      State = iota // no tick scheduled
	StateAnimating              // a redraw is scheduled for the next frame
)

// String returns "idle" or "animating".
func (s State) String() string {
	if s == StateAnimating {
		return "animating"
	}
	return "idle"
}

// sourceImage is the loaded panorama. Fixed once set.
type sourceImage struct {
	width, height  float64
	degreePerPixel float64
}

// Panorama owns one pannable view: the source dimensions, viewport, pan
// state and projection settings. Instances are independent; several may
// share a Scheduler.
//
// A Panorama is not safe for concurrent use. Input, resize and ticks must
// all come from the goroutine stepping its Scheduler.
type Panorama struct {
	opts    Options
	surface Surface
	input   PointerSource
	ctrl    *Controller
	quality *QualityAdaptor

	sched     *Scheduler
	ownSched  bool
	scheduled bool
	closed    bool

	img       sourceImage
	viewW     int
	viewH     int
	fov       float64
	numSlices int
	scale     float64
	damping   float64

	pan      PanState
	glide    *glide
	lastTick time.Time

	frame []SliceProjection
	stats frameStats
	log   io.Writer
}

// New validates opts and returns a Panorama with input attached. Rendering
// starts once an image is set with Load or SetImage.
func New(opts Options) (*Panorama, error) {
	opts = opts.withDefaults()
	if opts.Surface == nil {
		return nil, fmt.Errorf("%w: surface is required", ErrConfig)
	}
	w, h := opts.Surface.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: surface size %dx%d", ErrConfig, w, h)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	p := &Panorama{
		opts:      opts,
		surface:   opts.Surface,
		input:     opts.Input,
		sched:     opts.Scheduler,
		viewW:     w,
		viewH:     h,
		fov:       opts.FieldOfView,
		numSlices: opts.NumSlices.resolve(w),
		scale:     1,
		damping:   opts.Damping,
		log:       opts.LogOutput,
	}
	p.pan.Velocity = opts.InitialSpeed
	if p.sched == nil {
		p.sched = NewScheduler()
		p.ownSched = true
	}
	p.ctrl = newController(&p.pan, p, opts.KeySpeed)
	p.quality = newQualityAdaptor(p.sched, p, opts.SilentDegradeQualityIfNeeded)
	if p.input != nil {
		p.input.Attach(p.ctrl.Handlers())
	}
	return p, nil
}

// Load fetches and decodes opts.Source with the configured Loader and sets
// it as the panorama image. On failure a diagnostic is logged, an
// *ImageLoadError is returned and no rendering starts.
func (p *Panorama) Load(ctx context.Context) error {
	if p.closed {
		return ErrClosed
	}
	if p.opts.Source == "" {
		return fmt.Errorf("%w: source is required", ErrConfig)
	}
	img, err := p.opts.Loader.Load(ctx, p.opts.Source)
	if err != nil {
		loadErr := &ImageLoadError{Source: p.opts.Source, Err: err}
		p.logf("error: %v", loadErr)
		return loadErr
	}
	return p.SetImage(img)
}

// SetImage installs a decoded panorama whose width spans 360 degrees. The
// view starts centered on the middle of the image; calibration runs, the
// first frame is drawn and quality monitoring begins.
func (p *Panorama) SetImage(img image.Image) error {
	if p.closed {
		return ErrClosed
	}
	if p.img.width != 0 {
		return ErrImageAlreadySet
	}
	b := img.Bounds()
	proj := Projection{
		FieldOfView:    p.fov,
		NumSlices:      p.numSlices,
		ImageWidth:     float64(b.Dx()),
		ImageHeight:    float64(b.Dy()),
		DegreePerPixel: 360.0 / float64(b.Dx()),
		ScaleFactor:    1,
	}
	if b.Dx() == 0 {
		proj.DegreePerPixel = 0
	}
	if err := proj.Validate(); err != nil {
		return err
	}
	if err := p.surface.SetSource(img); err != nil {
		return fmt.Errorf("set surface source: %w", err)
	}

	p.img = sourceImage{
		width:          proj.ImageWidth,
		height:         proj.ImageHeight,
		degreePerPixel: proj.DegreePerPixel,
	}
	p.pan.Position = p.img.width / 2
	p.calibrate()
	p.Redraw()
	p.quality.Start()
	return nil
}

// Resize applies a new viewport size. Calibration runs immediately, before
// the tick it requests.
func (p *Panorama) Resize(width, height int) {
	if p.closed || width <= 0 || height <= 0 {
		return
	}
	p.viewW, p.viewH = width, height
	p.surface.Resize(width, height)
	p.calibrate()
	p.requestTick()
}

// Close detaches input and stops the quality adaptor and all pending ticks.
// An owned scheduler is stopped; a shared one keeps serving other instances.
func (p *Panorama) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.input != nil {
		p.input.Detach()
	}
	p.quality.Stop()
	p.glide = nil
	p.scheduled = false
	if p.ownSched {
		p.sched.Stop()
	}
	return nil
}

// Controller returns the controller, for hosts that deliver input without a
// PointerSource.
func (p *Panorama) Controller() *Controller { return p.ctrl }

// Scheduler returns the scheduler driving this instance. Hosts step it once
// per frame.
func (p *Panorama) Scheduler() *Scheduler { return p.sched }

// State reports whether a tick is scheduled.
func (p *Panorama) State() State {
	if p.scheduled {
		return StateAnimating
	}
	return StateIdle
}

// Pan returns a copy of the pan state.
func (p *Panorama) Pan() PanState { return p.pan }

// Position returns the first visible source column.
func (p *Panorama) Position() float64 { return p.pan.Position }

// Velocity returns the current pan velocity.
func (p *Panorama) Velocity() float64 { return p.pan.Velocity }

// Holding reports whether input is held.
func (p *Panorama) Holding() bool { return p.pan.Holding }

// ScaleFactor returns the calibrated scale factor.
func (p *Panorama) ScaleFactor() float64 { return p.scale }

// NumSlices returns the current slice count.
func (p *Panorama) NumSlices() int { return p.numSlices }

// FieldOfView returns the horizontal field of view in degrees.
func (p *Panorama) FieldOfView() float64 { return p.fov }

// Viewport returns the current canvas size.
func (p *Panorama) Viewport() (width, height int) { return p.viewW, p.viewH }

// FPS returns the last sampled frame rate.
func (p *Panorama) FPS() int { return p.quality.FPS() }

// Degraded reports whether the quality adaptor has reduced the slice count.
func (p *Panorama) Degraded() bool { return p.quality.Degraded() }

// Loaded reports whether an image has been set.
func (p *Panorama) Loaded() bool { return p.img.width != 0 }

// DegreePerPixel returns 360 divided by the image width, or 0 before load.
func (p *Panorama) DegreePerPixel() float64 { return p.img.degreePerPixel }

// Heading returns the azimuth in degrees, in [0, 360), at the center of the
// view.
func (p *Panorama) Heading() float64 {
	if !p.Loaded() {
		return 0
	}
	return wrapPosition(p.pan.Position*p.img.degreePerPixel+p.fov/2, 360)
}

// Frame returns the slices drawn by the last tick. The slice is reused by
// the next tick.
func (p *Panorama) Frame() []SliceProjection { return p.frame }

// Projection returns the projection settings for the current frame.
func (p *Panorama) Projection() Projection {
	return Projection{
		FieldOfView:    p.fov,
		NumSlices:      p.numSlices,
		ImageWidth:     p.img.width,
		ImageHeight:    p.img.height,
		DegreePerPixel: p.img.degreePerPixel,
		ScaleFactor:    p.scale,
	}
}

// OffsetHeight returns the vertical compensation factor of the current
// projection.
func (p *Panorama) OffsetHeight() float64 {
	if !p.Loaded() {
		return 0
	}
	return p.Projection().OffsetHeight()
}

func (p *Panorama) sliceCount() int     { return p.numSlices }
func (p *Panorama) setSliceCount(n int) { p.numSlices = n }
func (p *Panorama) viewportWidth() int  { return p.viewW }

func (p *Panorama) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.log, "[panorama] "+format+"\n", args...)
}
