package panorama

// PanState is the mutable view position. It is owned by one Panorama and
// written only by its controller and render loop.
type PanState struct {
	// Position is the first visible source column, in [0, image width).
	Position float64
	// Velocity is the signed pan delta in screen pixels per tick.
	Velocity float64
	// Holding suppresses damping and rescheduling while input is held.
	Holding bool
	// HasMovedOnce enables damping. Before it is set the initial velocity
	// pans the view at constant speed.
	HasMovedOnce bool

	// keyHold marks a Holding set by the keyboard, which the render loop
	// clears after one tick.
	keyHold bool
}

// renderLoop is the part of the render loop the controller drives.
type renderLoop interface {
	requestTick()
	Redraw()
	cancelGlide()
}

// Controller turns pointer and key input into velocity and holding
// updates. It never touches the slice count or the scale factor.
type Controller struct {
	pan      *PanState
	loop     renderLoop
	keySpeed float64
	anchor   float64
}

func newController(pan *PanState, loop renderLoop, keySpeed float64) *Controller {
	return &Controller{pan: pan, loop: loop, keySpeed: keySpeed}
}

// Press starts a drag at x.
func (c *Controller) Press(x float64) {
	c.loop.cancelGlide()
	c.pan.Holding = true
	c.pan.keyHold = false
	c.pan.HasMovedOnce = true
	c.anchor = x
}

// Move sets the velocity to the screen delta since the previous move and
// requests one tick. Ignored unless a press is held.
func (c *Controller) Move(x float64) {
	if !c.pan.Holding || c.pan.keyHold {
		return
	}
	c.pan.Velocity = c.anchor - x
	c.anchor = x
	c.loop.requestTick()
}

// Release ends a drag and redraws immediately so the release frame is not
// deferred to the next tick.
func (c *Controller) Release() {
	c.pan.Holding = false
	c.pan.keyHold = false
	c.loop.Redraw()
}

// Key nudges the view by a fixed velocity. The hold it sets lasts for the
// one tick it schedules; damping starts on the tick after.
func (c *Controller) Key(k Key) {
	dir := 1.0
	switch k {
	case KeyLeft:
		dir = -1
	case KeyRight:
	default:
		return
	}
	c.loop.cancelGlide()
	c.pan.HasMovedOnce = true
	if !c.pan.Holding || c.pan.keyHold {
		c.pan.Holding = true
		c.pan.keyHold = true
	}
	c.pan.Velocity = dir * c.keySpeed
	c.loop.requestTick()
}

// Handlers returns handlers bound to this controller.
func (c *Controller) Handlers() Handlers {
	return Handlers{
		OnPress:   c.Press,
		OnMove:    c.Move,
		OnRelease: c.Release,
		OnKey:     c.Key,
	}
}
