package panorama

import (
	"image"

	"golang.org/x/image/draw"
)

// Surface is a drawable target of known pixel size. Implementations keep
// their own texture of the source image.
type Surface interface {
	// Size returns the current drawable size in pixels.
	Size() (width, height int)
	// Resize changes the drawable size. Content is not preserved.
	Resize(width, height int)
	// SetSource uploads the decoded panorama. Called once per instance.
	SetSource(img image.Image) error
	// Clear resets the drawable to its background.
	Clear()
	// DrawSlices draws slices in order. Later slices must be drawn over
	// earlier ones so their adjoining edges hide rounding seams.
	DrawSlices(slices []SliceProjection)
}

// sourceSpan clamps the source columns of s to [0, width) and reports
// whether anything remains.
func sourceSpan(s SliceProjection, width float64) (x0, x1 float64, ok bool) {
	x0 = max(s.SrcX, 0)
	x1 = min(s.SrcX+s.SrcWidth, width)
	return x0, x1, x1 > x0 && s.SrcWidth > 0
}

// dstXAt maps a source column inside s to its destination x coordinate.
func dstXAt(s SliceProjection, srcX float64) float64 {
	return s.DstX + (srcX-s.SrcX)/s.SrcWidth*s.DstWidth
}

// subImager is implemented by the standard library image types.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// toRGBA copies img into a new RGBA image whose bounds start at the origin.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
