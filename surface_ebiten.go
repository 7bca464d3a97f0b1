package panorama

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTextureWidth bounds the width of each source texture. Wider panoramas
// are split into column tiles.
const maxTextureWidth = 4096

// sourceTile is one column strip of the source texture.
type sourceTile struct {
	img *ebiten.Image
	x0  float64
	x1  float64
}

// EbitenSurface draws into an offscreen ebiten image. Slices are submitted
// as textured quads, one DrawTriangles32 call per run of slices sampling
// the same tile, so draw order is preserved.
type EbitenSurface struct {
	// Background fills the canvas on Clear. Defaults to opaque black.
	Background color.Color
	// Filter samples the source. Defaults to ebiten.FilterLinear.
	Filter ebiten.Filter

	canvas *ebiten.Image
	tiles  []sourceTile
	width  float64

	verts []ebiten.Vertex
	inds  []uint32
}

// NewEbitenSurface returns a surface with a canvas of the given size.
func NewEbitenSurface(width, height int) *EbitenSurface {
	return &EbitenSurface{
		Background: color.Black,
		Filter:     ebiten.FilterLinear,
		canvas:     ebiten.NewImage(width, height),
	}
}

// Image returns the canvas. It is replaced on Resize.
func (s *EbitenSurface) Image() *ebiten.Image { return s.canvas }

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Resize implements Surface.
func (s *EbitenSurface) Resize(width, height int) {
	if w, h := s.Size(); w == width && h == height {
		return
	}
	s.canvas.Deallocate()
	s.canvas = ebiten.NewImage(width, height)
}

// SetSource implements Surface.
func (s *EbitenSurface) SetSource(img image.Image) error {
	for _, t := range s.tiles {
		t.img.Deallocate()
	}
	s.tiles = s.tiles[:0]

	b := img.Bounds()
	sub, ok := img.(subImager)
	if !ok {
		rgba := toRGBA(img)
		sub, b = rgba, rgba.Bounds()
	}
	for x := b.Min.X; x < b.Max.X; x += maxTextureWidth {
		x1 := min(x+maxTextureWidth, b.Max.X)
		part := sub.SubImage(image.Rect(x, b.Min.Y, x1, b.Max.Y))
		s.tiles = append(s.tiles, sourceTile{
			img: ebiten.NewImageFromImage(part),
			x0:  float64(x - b.Min.X),
			x1:  float64(x1 - b.Min.X),
		})
	}
	s.width = float64(b.Dx())
	return nil
}

// Clear implements Surface.
func (s *EbitenSurface) Clear() {
	bg := s.Background
	if bg == nil {
		bg = color.Black
	}
	s.canvas.Fill(bg)
}

// DrawSlices implements Surface.
func (s *EbitenSurface) DrawSlices(slices []SliceProjection) {
	cur := -1
	for _, sl := range slices {
		x0, x1, ok := sourceSpan(sl, s.width)
		if !ok {
			continue
		}
		for i, t := range s.tiles {
			a, b := math.Max(x0, t.x0), math.Min(x1, t.x1)
			if b <= a {
				continue
			}
			if i != cur {
				s.flush(cur)
				cur = i
			}
			s.appendQuad(t, sl, a, b)
		}
	}
	s.flush(cur)
}

// appendQuad adds the part of sl sampling source columns [a, b) of tile t.
func (s *EbitenSurface) appendQuad(t sourceTile, sl SliceProjection, a, b float64) {
	dx0 := float32(dstXAt(sl, a))
	dx1 := float32(dstXAt(sl, b))
	dy0 := float32(sl.DstY)
	dy1 := float32(sl.DstY + sl.DstHeight)
	sx0 := float32(a - t.x0)
	sx1 := float32(b - t.x0)
	sy1 := float32(sl.SrcHeight)

	base := uint32(len(s.verts))
	s.verts = append(s.verts,
		ebiten.Vertex{DstX: dx0, DstY: dy0, SrcX: sx0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: dx1, DstY: dy0, SrcX: sx1, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: dx0, DstY: dy1, SrcX: sx0, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		ebiten.Vertex{DstX: dx1, DstY: dy1, SrcX: sx1, SrcY: sy1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	)
	// Two triangles: TL-TR-BL, TR-BR-BL
	s.inds = append(s.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits the accumulated quads for tile i.
func (s *EbitenSurface) flush(i int) {
	if i < 0 || len(s.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Filter = s.Filter
	s.canvas.DrawTriangles32(s.verts, s.inds, s.tiles[i].img, &op)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}
