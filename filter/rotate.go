package filter

import (
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/vidcapture/vcs/frame"
)

// rotateFilter rotates and scales the frame about its center, with
// bilinear sampling via gg's affine transform (spec.md §4.6, "rotate").
type rotateFilter struct{}

func (f *rotateFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	angleDeg := params[0] / 10
	scale := params[1] / 100
	if angleDeg == 0 && scale == 1 {
		return
	}

	w, h := int(r.Width), int(r.Height)
	src := bgraImage(append([]byte(nil), pixels...), r)

	dc := gg.NewContext(w, h)
	dc.Push()
	dc.Translate(float64(w)/2, float64(h)/2)
	dc.Rotate(angleDeg * math.Pi / 180)
	dc.Scale(scale, scale)
	dc.Translate(-float64(w)/2, -float64(h)/2)
	dc.DrawImage(src, 0, 0)
	dc.Pop()

	out := dc.Image()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r32, g32, b32, a32 := out.At(x, y).RGBA()
			idx := (y*w + x) * 4
			pixels[idx+0] = byte(b32 >> 8)
			pixels[idx+1] = byte(g32 >> 8)
			pixels[idx+2] = byte(r32 >> 8)
			pixels[idx+3] = byte(a32 >> 8)
		}
	}
}
