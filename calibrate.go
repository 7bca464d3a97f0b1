package panorama

import "math"

// Calibrate returns the uniform scale factor that fits the panorama band
// inside a canvas of the given size. The width term approximates the
// horizontal footprint of one field-of-view sweep at native resolution.
func Calibrate(canvasWidth, canvasHeight int, imageWidth, imageHeight, fov float64) float64 {
	return math.Min(
		float64(canvasWidth)/(2+imageWidth/280.0*fov),
		float64(canvasHeight)/imageHeight/2,
	)
}

// calibrate recomputes the scale factor from the current viewport.
// No-op until an image is set.
func (p *Panorama) calibrate() {
	if p.img.width == 0 {
		return
	}
	p.scale = Calibrate(p.viewW, p.viewH, p.img.width, p.img.height, p.fov)
}
