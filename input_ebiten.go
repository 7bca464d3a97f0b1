package panorama

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key repeat timing in ticks, matching a typical OS auto-repeat.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// EbitenInput polls ebiten mouse, touch and keyboard state and delivers it
// as normalized handler calls. Mouse and the first touch share one logical
// pointer. Leaving the surface while pressed counts as a release.
//
// Injected events take priority: while the embedded queue is non-empty,
// real input is not read.
type EbitenInput struct {
	InjectedInput

	width, height int

	down    bool
	touch   bool
	touchID ebiten.TouchID
	lastX   int

	touchBuf []ebiten.TouchID
}

// NewEbitenInput returns a detached source.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// SetBounds sets the surface size used to detect the pointer leaving it.
func (in *EbitenInput) SetBounds(width, height int) {
	in.width, in.height = width, height
}

// Detach implements PointerSource.
func (in *EbitenInput) Detach() {
	in.InjectedInput.Detach()
	in.down = false
	in.touch = false
}

// Poll reads one frame of input. Call once per Update.
func (in *EbitenInput) Poll() {
	if in.InjectedInput.Poll() || !in.attached {
		return
	}
	in.pollTouch()
	if !in.touch {
		in.pollMouse()
	}
	in.pollKeys()
}

func (in *EbitenInput) pollMouse() {
	x, y := ebiten.CursorPosition()
	if !in.down {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && in.inside(x, y) {
			in.down = true
			in.lastX = x
			in.handlers.press(float64(x))
		}
		return
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		!ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || !in.inside(x, y) {
		in.down = false
		in.handlers.release()
		return
	}
	if x != in.lastX {
		in.lastX = x
		in.handlers.move(float64(x))
	}
}

func (in *EbitenInput) pollTouch() {
	if in.touch {
		if inpututil.IsTouchJustReleased(in.touchID) {
			in.touch = false
			in.down = false
			in.handlers.release()
			return
		}
		x, _ := ebiten.TouchPosition(in.touchID)
		if x != in.lastX {
			in.lastX = x
			in.handlers.move(float64(x))
		}
		return
	}
	if in.down {
		return
	}
	in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
	if len(in.touchBuf) == 0 {
		return
	}
	in.touchID = in.touchBuf[0]
	in.touch = true
	in.down = true
	x, _ := ebiten.TouchPosition(in.touchID)
	in.lastX = x
	in.handlers.press(float64(x))
}

func (in *EbitenInput) pollKeys() {
	if keyRepeated(ebiten.KeyArrowLeft) {
		in.handlers.key(KeyLeft)
	}
	if keyRepeated(ebiten.KeyArrowRight) {
		in.handlers.key(KeyRight)
	}
}

// inside reports whether (x, y) lies on the surface. Unknown bounds count
// as inside.
func (in *EbitenInput) inside(x, y int) bool {
	if in.width <= 0 || in.height <= 0 {
		return true
	}
	return x >= 0 && x < in.width && y >= 0 && y < in.height
}

// keyRepeated reports a key press on its first tick and then at the
// auto-repeat cadence while held.
func keyRepeated(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > keyRepeatDelay && d%keyRepeatInterval == 0)
}
