package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// kernel3x3Filter applies nine freely configurable signed coefficients as
// a convolution kernel (spec.md §4.6, "kernel_3x3").
type kernel3x3Filter struct{}

func (f *kernel3x3Filter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	k := [3][3]float64{
		{params[0], params[1], params[2]},
		{params[3], params[4], params[5]},
		{params[6], params[7], params[8]},
	}
	convolve3x3(pixels, r, k)
}
