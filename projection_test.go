package panorama

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func scenarioProjection() Projection {
	return Projection{
		FieldOfView:    120,
		NumSlices:      4,
		ImageWidth:     3600,
		ImageHeight:    1800,
		DegreePerPixel: 0.1,
		ScaleFactor:    1,
	}
}

func TestCosec(t *testing.T) {
	tests := []struct {
		deg, want float64
	}{
		{90, 1},
		{30, 2},
		{150, 2},
		{45, math.Sqrt2},
	}
	for _, tt := range tests {
		if got := Cosec(tt.deg); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("Cosec(%g) = %g, want %g", tt.deg, got, tt.want)
		}
	}
}

func TestSliceZeroScenario(t *testing.T) {
	p := scenarioProjection()
	s := p.Slice(0, 1800, 0)
	if !approxEqual(s.Angle, 30, epsilon) {
		t.Errorf("Angle = %g, want 30", s.Angle)
	}
	if !approxEqual(s.SrcWidth, 300, epsilon) {
		t.Errorf("SrcWidth = %g, want 300", s.SrcWidth)
	}
	if !approxEqual(s.ProjectedLength, 600, 1e-6) {
		t.Errorf("ProjectedLength = %g, want 600", s.ProjectedLength)
	}
	if s.SrcX != 1800 {
		t.Errorf("SrcX = %g, want 1800", s.SrcX)
	}
	// Edge slice has the largest cosecant, so it sits at the top.
	if !approxEqual(s.DstY, 0, 1e-6) {
		t.Errorf("DstY = %g, want 0", s.DstY)
	}
	if !approxEqual(s.DstHeight, 3600, 1e-6) {
		t.Errorf("DstHeight = %g, want 3600", s.DstHeight)
	}
	if !approxEqual(s.DstWidth, 601, 1e-6) {
		t.Errorf("DstWidth = %g, want 601", s.DstWidth)
	}
}

func TestAngleReflection(t *testing.T) {
	p := scenarioProjection()
	want := []float64{30, 60, 90, 60}
	for i, w := range want {
		if got := p.Angle(i); !approxEqual(got, w, epsilon) {
			t.Errorf("Angle(%d) = %g, want %g", i, got, w)
		}
	}
}

func TestAngleStaysInsideOpenInterval(t *testing.T) {
	for _, fov := range []float64{1, 45, 90, 120, 170, 179.9} {
		for _, n := range []int{1, 2, 3, 7, 100, 600} {
			p := Projection{FieldOfView: fov, NumSlices: n, ImageWidth: 3600, ImageHeight: 1800, DegreePerPixel: 0.1, ScaleFactor: 1}
			for i := 0; i < n; i++ {
				a := p.Angle(i)
				if !(a > 0 && a < 180) {
					t.Fatalf("fov=%g n=%d i=%d: angle %g outside (0, 180)", fov, n, i, a)
				}
				if c := Cosec(a); math.IsInf(c, 0) || math.IsNaN(c) {
					t.Fatalf("fov=%g n=%d i=%d: cosec(%g) = %g", fov, n, i, a, c)
				}
			}
		}
	}
}

func TestSliceWrapSubtractsWidthMinusSegment(t *testing.T) {
	p := scenarioProjection()
	// Slice 1 starts at 3800, past the end of the image.
	s := p.Slice(1, 3500, 0)
	if !approxEqual(s.SrcX, 500, epsilon) {
		t.Errorf("SrcX = %g, want 500", s.SrcX)
	}
	// Slice 0 ends exactly at the image width: no wrap.
	s = p.Slice(0, 3300, 0)
	if s.SrcX != 3300 {
		t.Errorf("SrcX = %g, want 3300", s.SrcX)
	}
}

func TestAppendSlicesAccumulatesRoundedOffsets(t *testing.T) {
	p := scenarioProjection()
	p.ScaleFactor = 0.37
	slices := p.AppendSlices(nil, 0)
	if len(slices) != 4 {
		t.Fatalf("len = %d, want 4", len(slices))
	}
	var used float64
	for i, s := range slices {
		if s.Index != i {
			t.Errorf("slice %d has Index %d", i, s.Index)
		}
		if s.DstX != used {
			t.Errorf("slice %d DstX = %g, want %g", i, s.DstX, used)
		}
		if s.DstX != math.Trunc(s.DstX) {
			t.Errorf("slice %d DstX = %g, want integral offset", i, s.DstX)
		}
		used += math.Round(p.ScaleFactor * s.ProjectedLength)
	}
}

func TestAppendSlicesMatchesSlice(t *testing.T) {
	p := scenarioProjection()
	got := p.AppendSlices(nil, 1200)
	want := []SliceProjection{
		p.Slice(0, 1200, 0),
		p.Slice(1, 1200, 600),
		p.Slice(2, 1200, 600+math.Round(600/math.Sqrt(3))),
		p.Slice(3, 1200, 600+math.Round(600/math.Sqrt(3))+300),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("AppendSlices mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectionValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Projection)
		ok   bool
	}{
		{"valid", func(*Projection) {}, true},
		{"zero slices", func(p *Projection) { p.NumSlices = 0 }, false},
		{"negative slices", func(p *Projection) { p.NumSlices = -3 }, false},
		{"fov 180", func(p *Projection) { p.FieldOfView = 180 }, false},
		{"fov 0", func(p *Projection) { p.FieldOfView = 0 }, false},
		{"no image", func(p *Projection) { p.ImageWidth = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := scenarioProjection()
			tt.mod(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrDegenerateConfig) {
				t.Fatalf("Validate() = %v, want ErrDegenerateConfig", err)
			}
		})
	}
}

func TestOffsetHeight(t *testing.T) {
	p := scenarioProjection()
	// cosec(30) - cosec(90) = 1
	if got := p.OffsetHeight(); !approxEqual(got, 3600, 1e-6) {
		t.Errorf("OffsetHeight() = %g, want 3600", got)
	}
}

func TestWrapPosition(t *testing.T) {
	tests := []struct {
		pos, want float64
	}{
		{0, 0},
		{3599, 3599},
		{3600, 0},
		{3700, 100},
		{-100, 3500},
		{-3600, 0},
		{-7300, 3500},
		{11000, 200},
	}
	for _, tt := range tests {
		got := wrapPosition(tt.pos, 3600)
		if !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("wrapPosition(%g) = %g, want %g", tt.pos, got, tt.want)
		}
		if got < 0 || got >= 3600 {
			t.Errorf("wrapPosition(%g) = %g outside [0, 3600)", tt.pos, got)
		}
	}
	// A tiny negative value must not round up to the width.
	if got := wrapPosition(-1e-14, 3600); got < 0 || got >= 3600 {
		t.Errorf("wrapPosition(-1e-14) = %g outside [0, 3600)", got)
	}
}
