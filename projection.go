package panorama

import (
	"fmt"
	"math"
)

// DefaultFieldOfView is the horizontal field of view in degrees, roughly
// that of human vision.
const DefaultFieldOfView = 120.0

// SliceProjection is the source range and destination strip of one angular
// slice for a single frame. Slices are recomputed every tick.
type SliceProjection struct {
	Index int
	// Angle is the reflected slice angle in degrees, within (0, 90].
	Angle float64
	// ProjectedLength is SrcWidth scaled by the cosecant of Angle, before
	// the scale factor is applied.
	ProjectedLength float64

	// Source columns [SrcX, SrcX+SrcWidth) over the full image height.
	SrcX, SrcWidth, SrcHeight float64

	// Destination rectangle on the surface.
	DstX, DstY, DstWidth, DstHeight float64
}

// Projection holds the inputs of the cosecant projection for one frame.
// The zero value is not usable; see Validate.
type Projection struct {
	FieldOfView    float64
	NumSlices      int
	ImageWidth     float64
	ImageHeight    float64
	DegreePerPixel float64
	ScaleFactor    float64
}

// Cosec returns the cosecant of an angle given in degrees.
func Cosec(deg float64) float64 {
	return 1 / math.Sin(deg*math.Pi/180)
}

// Validate rejects configurations for which the kernel would divide by
// zero or by a vanishing sine.
func (p Projection) Validate() error {
	if p.NumSlices < 1 {
		return fmt.Errorf("%w: num slices %d, want >= 1", ErrDegenerateConfig, p.NumSlices)
	}
	if !(p.FieldOfView > 0 && p.FieldOfView < 180) {
		return fmt.Errorf("%w: field of view %g, want in (0, 180)", ErrDegenerateConfig, p.FieldOfView)
	}
	if p.ImageWidth <= 0 || p.ImageHeight <= 0 || p.DegreePerPixel <= 0 {
		return fmt.Errorf("%w: image %gx%g", ErrDegenerateConfig, p.ImageWidth, p.ImageHeight)
	}
	return nil
}

// SegmentLength is the number of source columns covered by one slice.
func (p Projection) SegmentLength() float64 {
	return (1 / p.DegreePerPixel) * (p.FieldOfView / float64(p.NumSlices))
}

// Angle returns the slice angle for index i. Angles past 90 are reflected,
// so the result lies in [90-fov/2, 90].
func (p Projection) Angle(i int) float64 {
	angle := 90 - (p.FieldOfView/2 - float64(i)*p.FieldOfView/float64(p.NumSlices))
	if angle > 90 {
		angle = 180 - angle
	}
	return angle
}

// OffsetHeight is the vertical compensation factor for displaying the
// central part of the band on top.
func (p Projection) OffsetHeight() float64 {
	return p.ImageHeight * 2 / (Cosec(90-p.FieldOfView/2) - Cosec(90))
}

// Slice projects slice i for a view starting at source column position.
// dstX is the destination offset accumulated by the preceding slices.
func (p Projection) Slice(i int, position, dstX float64) SliceProjection {
	seg := p.SegmentLength()
	angle := p.Angle(i)
	cosec := Cosec(angle)
	projected := seg * cosec

	start := position + float64(i)*seg
	if start+seg > p.ImageWidth {
		start -= p.ImageWidth - seg
	}

	return SliceProjection{
		Index:           i,
		Angle:           angle,
		ProjectedLength: projected,
		SrcX:            start,
		SrcWidth:        seg,
		SrcHeight:       p.ImageHeight,
		DstX:            dstX,
		DstY:            p.ImageHeight / 2 * (p.ScaleFactor * (Cosec(90-p.FieldOfView/2) - cosec)),
		DstWidth:        p.ScaleFactor*projected + 1,
		DstHeight:       p.ImageHeight * p.ScaleFactor * cosec,
	}
}

// AppendSlices appends all NumSlices projections for position to dst in
// increasing index order. Destination offsets advance by the rounded
// scaled projected length, the same rounding used for drawing, so no drift
// accumulates across slices.
func (p Projection) AppendSlices(dst []SliceProjection, position float64) []SliceProjection {
	var used float64
	for i := 0; i < p.NumSlices; i++ {
		s := p.Slice(i, position, used)
		dst = append(dst, s)
		used += math.Round(p.ScaleFactor * s.ProjectedLength)
	}
	return dst
}

// wrapPosition folds a source column into [0, width).
func wrapPosition(pos, width float64) float64 {
	pos = math.Mod(pos, width)
	if pos < 0 {
		pos += width
	}
	if pos >= width {
		pos = 0
	}
	return pos
}
