package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// blurFilter implements a box blur, optionally run three times in sequence
// to approximate a Gaussian (spec.md §4.6, "blur").
type blurFilter struct{}

func (f *blurFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	radius := int(params[0] / 10)
	if radius <= 0 {
		return
	}
	passes := 1
	if params[1] != 0 {
		passes = 3
	}
	src := append([]byte(nil), pixels...)
	dst := pixels
	for p := 0; p < passes; p++ {
		boxBlurPass(dst, src, r, radius)
		src, dst = dst, src
	}
	if passes%2 == 1 {
		copy(pixels, src)
	}
}

// boxBlurPass writes an axis-separable box blur of src into dst. Both must
// be distinct full-frame buffers.
func boxBlurPass(dst, src []byte, r frame.Resolution, radius int) {
	w, h := int(r.Width), int(r.Height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumB, sumG, sumR, n int
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					idx := (ny*w + nx) * 4
					sumB += int(src[idx+0])
					sumG += int(src[idx+1])
					sumR += int(src[idx+2])
					n++
				}
			}
			idx := (y*w + x) * 4
			dst[idx+0] = byte(sumB / n)
			dst[idx+1] = byte(sumG / n)
			dst[idx+2] = byte(sumR / n)
			dst[idx+3] = src[idx+3]
		}
	}
}
