package panorama

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often the debug overlay redraws its text.
const overlayRefresh = 500 * time.Millisecond

// debugOverlay is the fps and slice count box drawn by the Viewer in debug
// mode. It keeps its own image and only re-renders text every ~0.5 seconds.
type debugOverlay struct {
	img  *ebiten.Image
	last time.Time
}

func newDebugOverlay() *debugOverlay {
	// 140x48 fits "fps: 60\nnum_slices: 600\ntps: 60.0"
	return &debugOverlay{img: ebiten.NewImage(140, 48)}
}

// update refreshes the overlay text from p when the refresh period elapsed.
func (o *debugOverlay) update(p *Panorama, now time.Time) {
	if !o.last.IsZero() && now.Sub(o.last) < overlayRefresh {
		return
	}
	o.last = now
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{A: 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("%s\ntps: %.1f", p.DebugText(), ebiten.ActualTPS()))
}

func (o *debugOverlay) draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(10, 10)
	screen.DrawImage(o.img, op)
}
