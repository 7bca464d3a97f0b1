package panorama

import (
	"context"
	"time"
)

// DefaultFrameInterval is the fixed-rate fallback used by Scheduler.Run when
// no vsync-aligned tick source is available.
const DefaultFrameInterval = time.Second / 60

// FrameFunc is a callback run on a scheduled frame.
type FrameFunc func(now time.Time)

// Scheduler runs frame callbacks cooperatively. A callback requested with
// RequestFrame runs once, on the next Step. Callbacks requested while a step
// is running are deferred to the following step.
//
// A Scheduler is not safe for concurrent use; all calls must come from the
// goroutine that drives Step.
type Scheduler struct {
	queue   []FrameFunc
	running []FrameFunc
	stopped bool
	frames  uint64
}

// NewScheduler returns a started scheduler with no pending callbacks.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RequestFrame queues fn for the next frame. It reports false, dropping fn,
// when the scheduler is stopped.
func (s *Scheduler) RequestFrame(fn FrameFunc) bool {
	if s.stopped || fn == nil {
		return false
	}
	s.queue = append(s.queue, fn)
	return true
}

// Step runs every callback that was pending when it was called and returns
// how many ran.
func (s *Scheduler) Step(now time.Time) int {
	if s.stopped {
		return 0
	}
	s.frames++
	s.running, s.queue = s.queue, s.running[:0]
	n := 0
	for _, fn := range s.running {
		if s.stopped {
			break
		}
		fn(now)
		n++
	}
	clear(s.running)
	s.running = s.running[:0]
	return n
}

// Pending returns the number of callbacks waiting for the next step.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Frames returns the number of steps run so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Stop drops all pending callbacks. Later requests are ignored until Start.
func (s *Scheduler) Stop() {
	s.stopped = true
	clear(s.queue)
	s.queue = s.queue[:0]
}

// Start re-enables a stopped scheduler.
func (s *Scheduler) Start() {
	s.stopped = false
}

// Stopped reports whether Stop has been called without a following Start.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Run steps the scheduler on a fixed-rate ticker until ctx is done or the
// scheduler is stopped. It returns ctx.Err() on cancellation and nil on stop.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if s.stopped {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Step(now)
		}
	}
}
