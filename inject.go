package panorama

type injectedKind uint8

const (
	injectPress injectedKind = iota
	injectMove
	injectRelease
	injectKey
)

// injectedEvent is a single queued synthetic input event.
type injectedEvent struct {
	kind injectedKind
	x    float64
	key  Key
}

// InjectedInput is a PointerSource fed from a queue of synthetic events.
// Poll delivers one event per call, so a queued sequence plays out one
// event per frame, the way real input arrives.
type InjectedInput struct {
	handlers Handlers
	attached bool
	queue    []injectedEvent
}

// NewInjectedInput returns an empty, detached source.
func NewInjectedInput() *InjectedInput {
	return &InjectedInput{}
}

// Attach implements PointerSource.
func (in *InjectedInput) Attach(h Handlers) {
	in.handlers = h
	in.attached = true
}

// Detach implements PointerSource. Queued events are dropped.
func (in *InjectedInput) Detach() {
	in.handlers = Handlers{}
	in.attached = false
	in.queue = in.queue[:0]
}

// Attached reports whether handlers are attached.
func (in *InjectedInput) Attached() bool { return in.attached }

// InjectPress queues a press at screen x.
func (in *InjectedInput) InjectPress(x float64) {
	in.queue = append(in.queue, injectedEvent{kind: injectPress, x: x})
}

// InjectMove queues a move to screen x. Use between InjectPress and
// InjectRelease to simulate a drag.
func (in *InjectedInput) InjectMove(x float64) {
	in.queue = append(in.queue, injectedEvent{kind: injectMove, x: x})
}

// InjectRelease queues a release.
func (in *InjectedInput) InjectRelease() {
	in.queue = append(in.queue, injectedEvent{kind: injectRelease})
}

// InjectKey queues a key press.
func (in *InjectedInput) InjectKey(k Key) {
	in.queue = append(in.queue, injectedEvent{kind: injectKey, key: k})
}

// InjectDrag queues a press at fromX, frames-2 linearly interpolated moves
// and a final move to toX followed by a release. The sequence consumes
// frames+1 polls. Minimum frames is 2.
func (in *InjectedInput) InjectDrag(fromX, toX float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX + (toX-fromX)*t)
	}
	in.InjectMove(toX)
	in.InjectRelease()
}

// Pending returns the number of queued events.
func (in *InjectedInput) Pending() int { return len(in.queue) }

// Poll delivers the next queued event and reports whether one was consumed.
func (in *InjectedInput) Poll() bool {
	if len(in.queue) == 0 {
		return false
	}
	evt := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	if !in.attached {
		return true
	}
	switch evt.kind {
	case injectPress:
		in.handlers.press(evt.x)
	case injectMove:
		in.handlers.move(evt.x)
	case injectRelease:
		in.handlers.release()
	case injectKey:
		in.handlers.key(evt.key)
	}
	return true
}
