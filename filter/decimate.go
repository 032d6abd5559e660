package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// decimateFilter replicates each factor x factor block of source pixels
// back over itself, either by nearest (top-left sample) or averaged
// (block-sum) reduction, producing a pixelated image at the original
// resolution (spec.md §4.6, "decimate").
type decimateFilter struct{}

func (f *decimateFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	factor := int(params[0])
	if factor < 2 {
		return
	}
	averaged := params[1] != 0
	w, h := int(r.Width), int(r.Height)
	src := append([]byte(nil), pixels...)

	for by := 0; by < h; by += factor {
		for bx := 0; bx < w; bx += factor {
			bw := min(factor, w-bx)
			bh := min(factor, h-by)

			var b, g, rr byte
			if averaged {
				var sumB, sumG, sumR, n int
				for y := 0; y < bh; y++ {
					for x := 0; x < bw; x++ {
						idx := ((by+y)*w + (bx + x)) * 4
						sumB += int(src[idx+0])
						sumG += int(src[idx+1])
						sumR += int(src[idx+2])
						n++
					}
				}
				b, g, rr = byte(sumB/n), byte(sumG/n), byte(sumR/n)
			} else {
				idx := (by*w + bx) * 4
				b, g, rr = src[idx+0], src[idx+1], src[idx+2]
			}

			for y := 0; y < bh; y++ {
				for x := 0; x < bw; x++ {
					idx := ((by+y)*w + (bx + x)) * 4
					pixels[idx+0], pixels[idx+1], pixels[idx+2] = b, g, rr
				}
			}
		}
	}
}
