package panorama

import (
	"math"
	"time"
)

// maxTickDelta bounds the time step fed to the glide tween after a stall.
const maxTickDelta = 100 * time.Millisecond

// requestTick schedules one render tick unless one is already pending.
func (p *Panorama) requestTick() {
	if p.scheduled || p.closed || !p.Loaded() {
		return
	}
	p.scheduled = p.sched.RequestFrame(p.tick)
}

// tick is the scheduled render callback.
func (p *Panorama) tick(now time.Time) {
	p.scheduled = false
	if p.closed {
		return
	}
	p.render(now)
}

// Redraw renders one frame synchronously, independent of any pending tick.
// Pointer release uses it so the release frame is not deferred. It runs
// outside the host's clock: an active glide does not advance and the next
// scheduled tick measures its time step from the previous one.
func (p *Panorama) Redraw() {
	if p.closed {
		return
	}
	p.render(time.Time{})
}

// render advances the view by one tick, draws every slice and decides
// whether the loop keeps animating. A zero now marks an out-of-band redraw.
func (p *Panorama) render(now time.Time) {
	if !p.Loaded() {
		return
	}
	var dt time.Duration
	switch {
	case now.IsZero():
	case p.lastTick.IsZero():
		dt = DefaultFrameInterval
		p.lastTick = now
	default:
		dt = min(max(now.Sub(p.lastTick), 0), maxTickDelta)
		p.lastTick = now
	}

	var t0 time.Time
	if p.opts.Debug {
		t0 = time.Now()
	}

	if p.glide != nil {
		p.pan.Position = p.glide.step(dt)
	} else {
		p.pan.Position += p.pan.Velocity / p.scale
	}
	p.pan.Position = wrapPosition(p.pan.Position, p.img.width)

	p.frame = p.Projection().AppendSlices(p.frame[:0], p.pan.Position)

	if p.opts.Debug {
		p.stats.projectTime = time.Since(t0)
		t0 = time.Now()
	}

	p.surface.Clear()
	p.surface.DrawSlices(p.frame)

	if p.opts.Debug {
		p.stats.drawTime = time.Since(t0)
		p.stats.slices = len(p.frame)
		p.debugLog()
	}

	p.advanceLoop()
}

// advanceLoop applies damping and reschedules while motion remains.
func (p *Panorama) advanceLoop() {
	if p.glide != nil {
		if p.glide.done {
			p.glide = nil
			p.pan.Velocity = 0
			return
		}
		p.requestTick()
		return
	}
	if p.pan.keyHold {
		// The keyboard nudge holds for exactly one tick.
		p.pan.keyHold = false
		p.pan.Holding = false
		p.requestTick()
		return
	}
	if p.pan.Holding {
		return
	}
	if p.pan.HasMovedOnce {
		p.pan.Velocity /= p.damping
	}
	if math.Trunc(math.Abs(p.pan.Velocity)) > 0 {
		p.requestTick()
	}
}
