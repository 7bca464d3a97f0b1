package panorama

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// screenshotQueue collects labels during a frame and writes one file per
// label when flushed at the end of drawing.
type screenshotQueue struct {
	dir    string
	format string
	labels []string
	// written holds the paths of successfully written files, newest last.
	written []string
}

func (q *screenshotQueue) add(label string) {
	q.labels = append(q.labels, label)
}

// flush writes every queued label using a single capture of the frame.
// Errors are reported to log and do not stop the frame.
func (q *screenshotQueue) flush(log io.Writer, capture func() image.Image) {
	if len(q.labels) == 0 {
		return
	}
	dir := q.dir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(log, "[panorama] screenshot: mkdir %s: %v\n", dir, err)
		q.labels = q.labels[:0]
		return
	}

	img := capture()
	stamp := time.Now().Format("20060102_150405")
	ext := q.format
	if ext != FormatWebP {
		ext = FormatPNG
	}
	for _, label := range q.labels {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", stamp, sanitizeLabel(label), ext))
		if err := SaveImage(path, img); err != nil {
			_, _ = fmt.Fprintf(log, "[panorama] screenshot: %v\n", err)
			continue
		}
		q.written = append(q.written, path)
	}
	q.labels = q.labels[:0]
}

// SaveImage encodes img to path. The format follows the extension: ".webp"
// writes lossless WebP, anything else PNG.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), "."+FormatWebP) {
		err = nativewebp.Encode(f, img, nil)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// readImage copies an ebiten image into straight-alpha NRGBA.
func readImage(src *ebiten.Image) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
