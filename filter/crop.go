package filter

import (
	"time"

	"golang.org/x/image/draw"

	"github.com/vidcapture/vcs/frame"
)

const (
	cropScaleLinear  = 0
	cropScaleNearest = 1
	cropScaleNone    = 2
)

// cropFilter extracts a sub-rectangle and either scales it to fill the
// frame or pads it with black, depending on scale_mode. An out-of-bounds
// rectangle is rejected without mutating pixels (spec.md §4.6, "crop").
type cropFilter struct{}

func (f *cropFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	cx, cy := int(params[0]), int(params[1])
	cw, ch := int(params[2]), int(params[3])
	if cw <= 0 || ch <= 0 {
		return
	}
	w, h := int(r.Width), int(r.Height)
	if cx < 0 || cy < 0 || cx+cw > w || cy+ch > h {
		return
	}

	// View a copy, so clearing pixels in the No-scale branch does not also
	// clear the cropped region it copies back.
	src := bgraImage(append([]byte(nil), pixels...), r)
	sub := src.SubImage(rect(cx, cy, cx+cw, cy+ch)).(*bgraImageType)

	switch int(params[4]) {
	case cropScaleNone:
		clearBGRA(pixels)
		copyRegion(pixels, r, sub, cx, cy)
	case cropScaleNearest:
		out := newBGRAImage(w, h)
		draw.NearestNeighbor.Scale(out, rect(0, 0, w, h), sub, sub.Bounds(), draw.Src, nil)
		copy(pixels, out.Pix)
	default:
		out := newBGRAImage(w, h)
		draw.BiLinear.Scale(out, rect(0, 0, w, h), sub, sub.Bounds(), draw.Src, nil)
		copy(pixels, out.Pix)
	}
}

func clearBGRA(pixels []byte) {
	for i := range pixels {
		pixels[i] = 0
	}
}

func copyRegion(pixels []byte, r frame.Resolution, sub *bgraImageType, destX, destY int) {
	b := sub.Bounds()
	w := int(r.Width)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := sub.PixOffset(x, y)
			dx, dy := destX+(x-b.Min.X), destY+(y-b.Min.Y)
			if dx < 0 || dy < 0 || dx >= w || dy >= int(r.Height) {
				continue
			}
			di := (dy*w + dx) * 4
			copy(pixels[di:di+4], sub.Pix[si:si+4])
		}
	}
}
