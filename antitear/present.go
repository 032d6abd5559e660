package antitear

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/vidcapture/vcs/frame"
)

// dotPatternDensity is the spacing, in pixels, between dots in the scan
// range overlay (spec.md §4.5.4, "visualize_scan_range").
const dotPatternDensity = 9

// presentFrontBuffer copies the front buffer into the present buffer,
// applies the configured diagnostic overlays, restores the original raster
// direction if the engine flipped the frame on entry, and returns the
// result (spec.md §4.5.4, "present_front_buffer").
func (e *Engine) presentFrontBuffer(r frame.Resolution) []byte {
	size := r.ByteSize()
	copy(e.present[:size], e.front[:size])

	if e.cfg.VisualizeScanRange {
		e.drawScanRangeOverlay(r)
	}
	if e.cfg.VisualizeTears {
		e.drawTornRowHighlights(r)
	}

	if e.cfg.ScanDirection == Up {
		flipRowsInto(e.scratch, e.present[:size], r)
		copy(e.present[:size], e.scratch[:size])
	}

	return e.present[:size]
}

// drawScanRangeOverlay shades the active scan range with a sparse dot
// pattern and marks its top and bottom boundaries with dashed lines, using
// gg for rasterization.
func (e *Engine) drawScanRangeOverlay(r frame.Resolution) {
	dc := gg.NewContext(int(r.Width), int(r.Height))

	dc.SetRGBA(1, 1, 1, 0.25)
	for y := int(e.scanStartRow); y <= int(e.scanEndRow); y += dotPatternDensity {
		for x := 0; x < int(r.Width); x += dotPatternDensity {
			dc.DrawPoint(float64(x), float64(y), 0.6)
		}
	}
	dc.Fill()

	const dashLen = 6
	dc.SetRGBA(1, 1, 0, 0.7)
	dc.SetLineWidth(1)
	for x := 0; x < int(r.Width); x += dashLen * 2 {
		x2 := x + dashLen
		dc.DrawLine(float64(x), float64(e.scanStartRow), float64(x2), float64(e.scanStartRow))
		dc.DrawLine(float64(x), float64(e.scanEndRow), float64(x2), float64(e.scanEndRow))
	}
	dc.Stroke()

	if img, ok := dc.Image().(*image.RGBA); ok {
		compositeRGBAOntoBGRA(e.present, r, img)
	}
}

// drawTornRowHighlights tints every row recorded in e.tornRows during the
// most recent Process call, so a viewer can see exactly where a
// reconstruction boundary was found (spec.md §4.5.4, "visualize_tears").
func (e *Engine) drawTornRowHighlights(r frame.Resolution) {
	const bpp = 4
	const alpha = 0.45
	for _, row := range e.tornRows {
		if row >= r.Height {
			continue
		}
		rowStart := row * r.Width * bpp
		for x := uint32(0); x < r.Width; x++ {
			idx := rowStart + x*bpp
			blendPixel(e.present[idx:idx+4], 255, 0, 0, alpha)
		}
	}
}

// compositeRGBAOntoBGRA alpha-blends a straight-alpha RGBA overlay image
// onto a BGRA frame buffer in place.
func compositeRGBAOntoBGRA(dst []byte, r frame.Resolution, overlay *image.RGBA) {
	const bpp = 4
	for y := 0; y < int(r.Height); y++ {
		for x := 0; x < int(r.Width); x++ {
			oi := overlay.PixOffset(x, y)
			a := overlay.Pix[oi+3]
			if a == 0 {
				continue
			}
			di := (y*int(r.Width) + x) * bpp
			blendPixel(dst[di:di+4], overlay.Pix[oi+0], overlay.Pix[oi+1], overlay.Pix[oi+2], float64(a)/255)
		}
	}
}

// blendPixel alpha-blends an (r, g, b) color at the given coverage onto a
// single BGRA pixel in place.
func blendPixel(px []byte, r, g, b byte, alpha float64) {
	px[0] = byte(float64(px[0])*(1-alpha) + float64(b)*alpha)
	px[1] = byte(float64(px[1])*(1-alpha) + float64(g)*alpha)
	px[2] = byte(float64(px[2])*(1-alpha) + float64(r)*alpha)
}
