package antitear

import "github.com/vidcapture/vcs/frame"

// processOneTear implements the one-tear-per-frame strategy (spec.md
// §4.5.2): at most one transition from stale to fresh content is assumed to
// exist in the scan range at any moment, so its location is found with a
// bisection search rather than a linear scan.
func (e *Engine) processOneTear(pixels []byte, r frame.Resolution) {
	if e.action == actionCopyRestOfPixelData {
		e.copyRows(e.back, pixels, r, 0, uint32(e.lastTearRow))
		e.back, e.front = e.front, e.back
		e.action = actionScanForTear
		e.lastTearRow = -1
	}
	// Fall through and scan this same (now-complete-in-back) frame for the
	// next tear, rather than waiting for the next Process call.
	e.scanForTear(pixels, r)
}

// scanForTear looks for the one tear this strategy assumes exists. Row
// start_row is checked first: if it is already new, the whole scan range
// has caught up to the incoming frame and there is no tear to track this
// time, so the full range is copied in and the reconstruction is complete
// immediately (spec.md §4.5.2).
func (e *Engine) scanForTear(pixels []byte, r frame.Resolution) {
	if rowChanged(e.cfg, e.scanStartRow, r.Width, pixels, e.front) {
		e.copyRows(e.back, pixels, r, e.scanStartRow, e.scanEndRow+1)
		e.back, e.front = e.front, e.back
		return
	}
	if !rowChanged(e.cfg, e.scanEndRow, r.Width, pixels, e.front) {
		// Nothing new anywhere in the scan range: the input is already
		// whole, so copy it straight into the front buffer and present it
		// (spec.md §4.5.2).
		e.copyRows(e.front, pixels, r, 0, r.Height)
		return
	}

	tearRow := e.bisectFirstNewRow(pixels, r, e.scanStartRow, e.scanEndRow)
	e.copyRows(e.back, pixels, r, tearRow, r.Height)
	e.lastTearRow = int(tearRow)
	e.action = actionCopyRestOfPixelData
	e.tornRows = append(e.tornRows, tearRow)
}

// bisectFirstNewRow returns the first row in (start, end] that rowChanged
// reports as new, assuming rows below it are monotonically new and rows at
// or above start (up to that row) are monotonically old. rowChanged(end) is
// known true and rowChanged(start) is known false by the caller.
func (e *Engine) bisectFirstNewRow(pixels []byte, r frame.Resolution, start, end uint32) uint32 {
	lo, hi := start, end
	for lo < hi {
		mid := lo + (hi-lo)/2
		if rowChanged(e.cfg, mid, r.Width, pixels, e.front) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
