package panorama

// Key identifies a key the controller reacts to.
type Key uint8

const (
	KeyLeft  Key = iota // pans toward lower source columns
	KeyRight            // pans toward higher source columns
)

// String returns "left" or "right".
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// Handlers is the capability set a host adapter delivers normalized input
// to. X coordinates are surface pixels.
type Handlers struct {
	OnPress   func(x float64)
	OnMove    func(x float64)
	OnRelease func()
	OnKey     func(k Key)
}

// PointerSource is implemented once per host environment. Attach replaces
// any previously attached handlers; Detach stops delivery.
type PointerSource interface {
	Attach(h Handlers)
	Detach()
}

func (h Handlers) press(x float64) {
	if h.OnPress != nil {
		h.OnPress(x)
	}
}

func (h Handlers) move(x float64) {
	if h.OnMove != nil {
		h.OnMove(x)
	}
}

func (h Handlers) release() {
	if h.OnRelease != nil {
		h.OnRelease()
	}
}

func (h Handlers) key(k Key) {
	if h.OnKey != nil {
		h.OnKey(k)
	}
}
