package filter

import (
	"time"

	"github.com/fogleman/gg"

	"github.com/vidcapture/vcs/frame"
)

const histogramBins = 32

// deltaHistogramFilter draws per-channel histograms of inter-frame pixel
// deltas onto the frame (spec.md §4.6, "delta_histogram"). It holds a
// private previous-frame buffer.
type deltaHistogramFilter struct {
	prev []byte
}

func (f *deltaHistogramFilter) Apply(pixels []byte, r frame.Resolution, params map[uint32]float64, _ time.Time) {
	size := int(r.ByteSize())
	if f.prev == nil || len(f.prev) != size {
		f.prev = append([]byte(nil), pixels[:size]...)
		return
	}

	var binsB, binsG, binsR [histogramBins]int
	for i := 0; i+3 < size; i += 4 {
		binsB[deltaBin(pixels[i], f.prev[i])]++
		binsG[deltaBin(pixels[i+1], f.prev[i+1])]++
		binsR[deltaBin(pixels[i+2], f.prev[i+2])]++
	}
	copy(f.prev, pixels[:size])

	drawHistogramOverlay(pixels, r, cornerFor(params[0]), binsB[:], binsG[:], binsR[:])
}

func deltaBin(a, b byte) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	bin := d * histogramBins / 256
	if bin >= histogramBins {
		bin = histogramBins - 1
	}
	return bin
}

func cornerFor(v float64) int {
	c := int(v)
	if c < 0 || c > 3 {
		return 0
	}
	return c
}

// drawHistogramOverlay renders the three channel histograms as stacked bar
// charts in one corner of the frame, using gg for rasterization and then
// compositing onto the BGRA buffer.
func drawHistogramOverlay(pixels []byte, r frame.Resolution, corner int, binsB, binsG, binsR []int) {
	const chartW, chartH = 96, 48
	w, h := int(r.Width), int(r.Height)
	ox, oy := cornerOrigin(corner, w, h, chartW, chartH)

	dc := gg.NewContext(chartW, chartH)
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawRectangle(0, 0, chartW, chartH)
	dc.Fill()

	drawBars(dc, binsB, 0, 0, 1)
	drawBars(dc, binsG, 0, 1, 0)
	drawBars(dc, binsR, 1, 0, 0)

	full := frame.Resolution{Width: uint32(w), Height: uint32(h), BitsPerPixel: 32}
	dst := bgraImage(pixels, full)
	img := dc.Image()
	for y := 0; y < chartH; y++ {
		for x := 0; x < chartW; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				continue
			}
			dst.Set(ox+x, oy+y, c)
		}
	}
}

func drawBars(dc *gg.Context, bins []int, r, g, b float64) {
	max := 1
	for _, v := range bins {
		if v > max {
			max = v
		}
	}
	barW := float64(dc.Width()) / float64(len(bins))
	dc.SetRGBA(r, g, b, 0.8)
	for i, v := range bins {
		bh := float64(v) / float64(max) * float64(dc.Height())
		dc.DrawRectangle(float64(i)*barW, float64(dc.Height())-bh, barW, bh)
	}
	dc.Fill()
}

func cornerOrigin(corner, frameW, frameH, chartW, chartH int) (x, y int) {
	switch corner {
	case 1:
		return frameW - chartW, 0
	case 2:
		return 0, frameH - chartH
	case 3:
		return frameW - chartW, frameH - chartH
	default:
		return 0, 0
	}
}
