package panorama

import (
	"fmt"
	"time"
)

// frameStats holds per-frame timings. Populated only in debug mode.
type frameStats struct {
	projectTime time.Duration
	drawTime    time.Duration
	slices      int
}

// debugLog prints timing and pan state for the last frame.
func (p *Panorama) debugLog() {
	if !p.opts.Debug {
		return
	}
	s := p.stats
	p.logf("project: %v | draw: %v | total: %v | slices: %d",
		s.projectTime, s.drawTime, s.projectTime+s.drawTime, s.slices)
	p.logf("position: %.1f | velocity: %.2f | holding: %t | scale: %.4f",
		p.pan.Position, p.pan.Velocity, p.pan.Holding, p.scale)
}

// DebugText returns the overlay text shown by hosts in debug mode.
func (p *Panorama) DebugText() string {
	return fmt.Sprintf("fps: %d\nnum_slices: %d", p.FPS(), p.numSlices)
}
