package panorama

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RasterSurface draws into an in-memory RGBA image. It needs no GPU and is
// used for headless rendering and snapshots.
type RasterSurface struct {
	// Background fills the canvas on Clear. Defaults to opaque black.
	Background color.Color
	// Interpolator resamples each slice. Defaults to draw.ApproxBiLinear.
	Interpolator draw.Interpolator

	canvas *image.RGBA
	src    *image.RGBA
}

// NewRasterSurface returns a surface of the given size.
func NewRasterSurface(width, height int) *RasterSurface {
	return &RasterSurface{
		Background:   color.Black,
		Interpolator: draw.ApproxBiLinear,
		canvas:       image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Image returns the canvas. It is replaced on Resize.
func (s *RasterSurface) Image() *image.RGBA { return s.canvas }

// Size implements Surface.
func (s *RasterSurface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Resize implements Surface.
func (s *RasterSurface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
}

// SetSource implements Surface. The image is copied to RGBA with its
// origin moved to (0, 0).
func (s *RasterSurface) SetSource(img image.Image) error {
	s.src = toRGBA(img)
	return nil
}

// Clear implements Surface.
func (s *RasterSurface) Clear() {
	bg := s.Background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(s.canvas, s.canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// DrawSlices implements Surface.
func (s *RasterSurface) DrawSlices(slices []SliceProjection) {
	if s.src == nil {
		return
	}
	interp := s.Interpolator
	if interp == nil {
		interp = draw.ApproxBiLinear
	}
	width := float64(s.src.Bounds().Dx())
	for _, sl := range slices {
		x0, x1, ok := sourceSpan(sl, width)
		if !ok || sl.SrcHeight <= 0 {
			continue
		}
		dx0, dx1 := dstXAt(sl, x0), dstXAt(sl, x1)
		clip := image.Rect(
			int(math.Floor(dx0)), int(math.Floor(sl.DstY)),
			int(math.Ceil(dx1)), int(math.Ceil(sl.DstY+sl.DstHeight)),
		).Intersect(s.canvas.Bounds())
		if clip.Empty() {
			continue
		}
		sr := image.Rect(int(math.Floor(x0)), 0, int(math.Ceil(x1)), s.src.Bounds().Dy())

		kx := sl.DstWidth / sl.SrcWidth
		ky := sl.DstHeight / sl.SrcHeight
		m := f64.Aff3{
			kx, 0, sl.DstX - kx*sl.SrcX,
			0, ky, sl.DstY,
		}
		dst := s.canvas.SubImage(clip).(*image.RGBA)
		interp.Transform(dst, m, s.src, sr, draw.Over, nil)
	}
}
