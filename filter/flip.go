package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

const (
	flipVertical   = 0
	flipHorizontal = 1
	flipBoth       = 2
)

// flipFilter mirrors the frame about one or both axes (spec.md §4.6,
// "flip").
type flipFilter struct{}

func (f *flipFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	w, h := int(r.Width), int(r.Height)
	switch int(params[0]) {
	case flipVertical:
		flipVert(pixels, w, h)
	case flipHorizontal:
		flipHoriz(pixels, w, h)
	case flipBoth:
		flipVert(pixels, w, h)
		flipHoriz(pixels, w, h)
	}
}

func flipVert(pixels []byte, w, h int) {
	rowBytes := w * 4
	tmp := make([]byte, rowBytes)
	for y := 0; y < h/2; y++ {
		top := pixels[y*rowBytes : y*rowBytes+rowBytes]
		bot := pixels[(h-1-y)*rowBytes : (h-1-y)*rowBytes+rowBytes]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

func flipHoriz(pixels []byte, w, h int) {
	for y := 0; y < h; y++ {
		row := pixels[y*w*4 : y*w*4+w*4]
		for x := 0; x < w/2; x++ {
			l, rr := row[x*4:x*4+4], row[(w-1-x)*4:(w-1-x)*4+4]
			l[0], rr[0] = rr[0], l[0]
			l[1], rr[1] = rr[1], l[1]
			l[2], rr[2] = rr[2], l[2]
			l[3], rr[3] = rr[3], l[3]
		}
	}
}
