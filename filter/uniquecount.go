package filter

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vidcapture/vcs/frame"
)

const uniqueCountWindow = time.Second

// uniqueCountFilter counts frames differing from the previous frame by
// more than a per-channel threshold, over a sliding one-second window, and
// renders the count as a decimal in one of four corners (spec.md §4.6,
// "unique_count"). Stateful: holds the previous frame and a ring of recent
// distinct-frame timestamps.
type uniqueCountFilter struct {
	prev  []byte
	times []time.Time
}

func (f *uniqueCountFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, now time.Time) {
	threshold := int(params[0])
	size := int(r.ByteSize())

	if f.prev == nil || len(f.prev) != size {
		f.prev = append([]byte(nil), pixels[:size]...)
	} else if frameDiffers(pixels[:size], f.prev, threshold) {
		copy(f.prev, pixels[:size])
		f.times = append(f.times, now)
	}

	cutoff := now.Add(-uniqueCountWindow)
	kept := f.times[:0]
	for _, t := range f.times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	f.times = kept

	drawCount(pixels, r, cornerFor(params[1]), len(f.times))
}

func frameDiffers(a, b []byte, threshold int) bool {
	for i := 0; i+2 < len(a); i += 4 {
		if absInt(int(a[i])-int(b[i])) > threshold ||
			absInt(int(a[i+1])-int(b[i+1])) > threshold ||
			absInt(int(a[i+2])-int(b[i+2])) > threshold {
			return true
		}
	}
	return false
}

// drawCount renders n as white decimal text over a translucent backing
// rectangle, using golang.org/x/image's basicfont face.
func drawCount(pixels []byte, r frame.Resolution, corner int, n int) {
	text := fmt.Sprintf("%d", n)
	face := basicfont.Face7x13
	textW := font.MeasureString(face, text).Ceil()
	const pad = 4
	boxW, boxH := textW+pad*2, 13+pad*2

	w, h := int(r.Width), int(r.Height)
	ox, oy := cornerOrigin(corner, w, h, boxW, boxH)

	full := frame.Resolution{Width: uint32(w), Height: uint32(h), BitsPerPixel: 32}
	dst := bgraImage(pixels, full)

	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			dst.Set(ox+x, oy+y, color.RGBA{A: 140})
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, boxW, boxH))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad + 10)},
	}
	d.DrawString(text)

	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dst.Set(ox+x, oy+y, img.At(x, y))
		}
	}
}
