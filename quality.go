package panorama

import (
	"math"
	"time"
)

// Quality thresholds.
const (
	lowFPSThreshold     = 10
	maxLowFPSSamples    = 10
	lowFPSForgiveWindow = 5 * time.Second
	fpsSampleWindow     = time.Second
)

// FPSSample estimates the frame rate from the frames counted since the
// start of a window. The window restarts once it has run longer than a
// second.
type FPSSample struct {
	start  time.Time
	frames int
	fps    int
}

// Frame records one frame at now and returns the running estimate
// floor(frames/elapsed) for the current window. ok is false on the first
// frame of the first window, when no time has elapsed yet.
func (s *FPSSample) Frame(now time.Time) (fps int, ok bool) {
	if s.start.IsZero() {
		s.start = now
	}
	s.frames++
	elapsed := now.Sub(s.start)
	if elapsed <= 0 {
		return s.fps, false
	}
	s.fps = int(math.Floor(float64(s.frames) / elapsed.Seconds()))
	if elapsed > fpsSampleWindow {
		s.frames = 0
		s.start = now
	}
	return s.fps, true
}

// FPS returns the last estimate, or 0 before the first one.
func (s *FPSSample) FPS() int {
	return s.fps
}

// sliceBudget is what the adaptor degrades.
type sliceBudget interface {
	sliceCount() int
	setSliceCount(n int)
	viewportWidth() int
}

// QualityAdaptor checks the frame rate on its own per-frame callback and,
// when enabled, quarters the slice count once after more than ten frames
// with a reading below 10 fps. Degradation is permanent and ends
// monitoring.
type QualityAdaptor struct {
	sched   *Scheduler
	budget  sliceBudget
	enabled bool

	sample   FPSSample
	under    int
	lastLow  time.Time
	degraded bool
	running  bool
	stopped  bool
}

func newQualityAdaptor(sched *Scheduler, budget sliceBudget, enabled bool) *QualityAdaptor {
	return &QualityAdaptor{sched: sched, budget: budget, enabled: enabled}
}

// Start begins sampling on the next frame. No-op once stopped or degraded.
func (q *QualityAdaptor) Start() {
	if q.running || q.stopped || q.degraded {
		return
	}
	q.running = q.sched.RequestFrame(q.frame)
}

// Stop ends monitoring for good.
func (q *QualityAdaptor) Stop() {
	q.stopped = true
	q.running = false
}

// FPS returns the current frame rate estimate.
func (q *QualityAdaptor) FPS() int {
	return q.sample.FPS()
}

// Degraded reports whether the slice count has been reduced.
func (q *QualityAdaptor) Degraded() bool {
	return q.degraded
}

func (q *QualityAdaptor) frame(now time.Time) {
	if q.stopped {
		return
	}
	if fps, ok := q.sample.Frame(now); ok {
		q.observe(now, fps)
	}
	if q.degraded {
		return
	}
	q.running = q.sched.RequestFrame(q.frame)
}

// observe checks one frame's reading. A low reading arriving more than
// five seconds after the previous one starts a new count.
func (q *QualityAdaptor) observe(now time.Time, fps int) {
	if !q.enabled || q.degraded || fps >= lowFPSThreshold {
		return
	}
	if !q.lastLow.IsZero() && now.Sub(q.lastLow) > lowFPSForgiveWindow {
		q.under = 0
	}
	q.lastLow = now
	q.under++
	if q.under > maxLowFPSSamples {
		q.degrade()
	}
}

func (q *QualityAdaptor) degrade() {
	n := max(q.budget.sliceCount()/4, q.budget.viewportWidth()/100, 1)
	q.budget.setSliceCount(n)
	q.degraded = true
	q.running = false
}
