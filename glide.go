package panorama

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// glide tweens the view position along the shortest arc to a target.
type glide struct {
	tween *gween.Tween
	width float64
	done  bool
}

func (g *glide) step(dt time.Duration) float64 {
	v, finished := g.tween.Update(float32(dt.Seconds()))
	g.done = finished
	return wrapPosition(float64(v), g.width)
}

// GlideTo pans the view center to heading (degrees) over duration seconds,
// taking the shorter way around. A nil easeFn uses ease.InOutQuad. Any press
// or key input cancels the glide. No-op before an image is set and while a
// pointer drag is held.
func (p *Panorama) GlideTo(heading float64, duration float32, easeFn ease.TweenFunc) {
	if p.closed || !p.Loaded() {
		return
	}
	if p.pan.Holding && !p.pan.keyHold {
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	w := p.img.width
	target := wrapPosition(heading/p.img.degreePerPixel-p.fov/2/p.img.degreePerPixel, w)
	delta := target - p.pan.Position
	// Fold into (-w/2, w/2] for the shortest arc.
	delta -= w * math.Floor(delta/w+0.5)
	if delta == -w/2 {
		delta = w / 2
	}

	p.pan.Velocity = 0
	p.pan.Holding = false
	p.pan.keyHold = false
	p.pan.HasMovedOnce = true
	if duration <= 0 {
		p.pan.Position = target
		p.requestTick()
		return
	}
	from := p.pan.Position
	p.glide = &glide{
		tween: gween.New(float32(from), float32(from+delta), duration, easeFn),
		width: w,
	}
	p.requestTick()
}

// Gliding reports whether a GlideTo animation is in progress.
func (p *Panorama) Gliding() bool { return p.glide != nil }

func (p *Panorama) cancelGlide() {
	if p.glide == nil {
		return
	}
	p.glide = nil
	p.pan.Velocity = 0
}
