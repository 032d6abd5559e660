package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// unsharpMaskFilter blurs a copy of the frame, subtracts it from the
// original to get a high-frequency delta, and adds that delta back scaled
// by strength (spec.md §4.6, "unsharp_mask").
type unsharpMaskFilter struct{}

func (f *unsharpMaskFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	strength := params[0]
	radius := int(params[1] / 10)
	if strength <= 0 || radius <= 0 {
		return
	}

	blurred := append([]byte(nil), pixels...)
	boxBlurPass(blurred, append([]byte(nil), pixels...), r, radius)

	for i := 0; i+3 < len(pixels); i += 4 {
		for c := 0; c < 3; c++ {
			orig := float64(pixels[i+c])
			blur := float64(blurred[i+c])
			pixels[i+c] = clampByte(orig + (orig-blur)*strength)
		}
	}
}
