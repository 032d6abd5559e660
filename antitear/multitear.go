package antitear

import "github.com/vidcapture/vcs/frame"

// maxRecursionDepth bounds how many nested passes processMultipleTears
// makes over the rows above a tear it has found (spec.md §4.5.3).
const maxRecursionDepth = 1

// processMultipleTears implements the multiple-tears-per-frame strategy: a
// linear scan (not a bisection - more than one transition between old and
// new content may exist, so the monotonicity bisection relies on does not
// hold) finds the first new row in the scan range and copies everything
// from there to the end of the scan range into back. It then makes one
// recursive pass over the prefix above that row. Every row of that prefix
// has already been found unchanged against the same front buffer, so the
// recursive pass finds no second tear: at most one tear row is recorded
// per call.
func (e *Engine) processMultipleTears(pixels []byte, r frame.Resolution, recursing bool, depth int) {
	firstNew, found := e.linearFindFirstNewRow(pixels, r, e.scanStartRow, e.scanEndRow)
	if !found {
		if !recursing {
			// No tear anywhere in the scan range: the input is already
			// whole, so copy it straight into the front buffer and present
			// it (spec.md §4.5.3). A recursive call finding nothing just
			// leaves the outer call's partial reconstruction in back alone.
			e.copyRows(e.front, pixels, r, 0, r.Height)
		}
		return
	}

	if firstNew == e.scanStartRow {
		// The entire scan range has caught up: the reconstruction is complete.
		e.copyRows(e.back, pixels, r, e.scanStartRow, e.scanEndRow+1)
		e.back, e.front = e.front, e.back
		e.prevTearRow = e.scanStartRow
		return
	}

	e.copyRows(e.back, pixels, r, firstNew, e.scanEndRow+1)
	e.prevTearRow = firstNew
	e.tornRows = append(e.tornRows, firstNew)

	if depth < maxRecursionDepth && firstNew > e.scanStartRow {
		savedEnd := e.scanEndRow
		e.scanEndRow = firstNew - 1
		e.processMultipleTears(pixels, r, true, depth+1)
		e.scanEndRow = savedEnd
	}
}

// linearFindFirstNewRow scans rows [start, end] in order and returns the
// first one rowChanged reports as new. Unlike the one-tear bisection entry
// check, the start row is not special-cased: spec.md §4.5.3 treats a hit at
// start as a real, reachable completion signal rather than dead code.
func (e *Engine) linearFindFirstNewRow(pixels []byte, r frame.Resolution, start, end uint32) (row uint32, found bool) {
	for y := start; y <= end; y++ {
		if rowChanged(e.cfg, y, r.Width, pixels, e.front) {
			return y, true
		}
		if y == ^uint32(0) {
			break // overflow guard, unreachable for any real resolution
		}
	}
	return 0, false
}
