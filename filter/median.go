package filter

import (
	"sort"
	"time"

	"github.com/vidcapture/vcs/frame"
)

// medianFilter replaces each pixel's channel values with the per-channel
// median over a square kernel of side 2*radius+1 (spec.md §4.6, "median").
type medianFilter struct{}

func (f *medianFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	radius := int(params[0])
	if radius <= 0 {
		return
	}
	w, h := int(r.Width), int(r.Height)
	src := append([]byte(nil), pixels...)

	side := 2*radius + 1
	bWin := make([]int, 0, side*side)
	gWin := make([]int, 0, side*side)
	rWin := make([]int, 0, side*side)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bWin, gWin, rWin = bWin[:0], gWin[:0], rWin[:0]
			for dy := -radius; dy <= radius; dy++ {
				ny := clampInt(y+dy, 0, h-1)
				for dx := -radius; dx <= radius; dx++ {
					nx := clampInt(x+dx, 0, w-1)
					idx := (ny*w + nx) * 4
					bWin = append(bWin, int(src[idx+0]))
					gWin = append(gWin, int(src[idx+1]))
					rWin = append(rWin, int(src[idx+2]))
				}
			}
			sort.Ints(bWin)
			sort.Ints(gWin)
			sort.Ints(rWin)
			mid := len(bWin) / 2
			idx := (y*w + x) * 4
			pixels[idx+0] = byte(bWin[mid])
			pixels[idx+1] = byte(gWin[mid])
			pixels[idx+2] = byte(rWin[mid])
		}
	}
}
