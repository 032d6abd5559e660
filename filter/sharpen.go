package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// sharpenFilter applies a fixed 3x3 Laplacian-like kernel, scaled by a
// strength parameter (spec.md §4.6, "sharpen").
type sharpenFilter struct{}

var sharpenKernel = [3][3]float64{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

func (f *sharpenFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	strength := params[0]
	if strength <= 0 {
		return
	}
	k := sharpenKernel
	if strength != 1 {
		for y := range k {
			for x := range k[y] {
				if y == 1 && x == 1 {
					k[y][x] = 1 + (k[y][x]-1)*strength
				} else {
					k[y][x] *= strength
				}
			}
		}
	}
	convolve3x3(pixels, r, k)
}

// convolve3x3 applies a 3x3 kernel in place, per BGR channel (alpha
// untouched), clamping results to [0, 255].
func convolve3x3(pixels []byte, r frame.Resolution, k [3][3]float64) {
	w, h := int(r.Width), int(r.Height)
	src := append([]byte(nil), pixels...)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumB, sumG, sumR float64
			for ky := -1; ky <= 1; ky++ {
				ny := clampInt(y+ky, 0, h-1)
				for kx := -1; kx <= 1; kx++ {
					nx := clampInt(x+kx, 0, w-1)
					weight := k[ky+1][kx+1]
					idx := (ny*w + nx) * 4
					sumB += float64(src[idx+0]) * weight
					sumG += float64(src[idx+1]) * weight
					sumR += float64(src[idx+2]) * weight
				}
			}
			idx := (y*w + x) * 4
			pixels[idx+0] = clampByte(sumB)
			pixels[idx+1] = clampByte(sumG)
			pixels[idx+2] = clampByte(sumR)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
