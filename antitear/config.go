package antitear

// ScanHint selects between the one-tear-per-frame bisection strategy and
// the multiple-tears-per-frame linear/recursive strategy.
type ScanHint int

const (
	OneTear ScanHint = iota
	MultipleTears
)

// ScanDirection is the raster direction the capture source is believed to
// draw the image in. The engine always works internally as if scanning
// Down; an Up-direction frame is flipped on entry and the presented frame
// is flipped back on exit (spec.md §4.5).
type ScanDirection int

const (
	Down ScanDirection = iota
	Up
)

// Config holds the anti-tear engine's live-editable tuning parameters
// (spec.md §4.5). All fields may be changed between frames.
type Config struct {
	// StartRowOffset and EndRowOffset bound the scan range. EndRowOffset is
	// measured from the bottom of the frame.
	StartRowOffset uint32
	EndRowOffset   uint32

	// Threshold is the minimum absolute per-channel delta, in a sampling
	// window's summed value, for that window to count as "changed" (0-255
	// scale per original pixel value, summed over WindowLength pixels).
	Threshold uint32

	// WindowLength is the width, in pixels, of the averaging sampling
	// window slid across each row.
	WindowLength uint32

	// StepSize is how many pixels the sampling window advances per step.
	// 0 is coerced to 1 by Normalize.
	StepSize uint32

	// MatchesRequired is how many changed sampling windows in a row are
	// needed to classify the row as "new".
	MatchesRequired uint32

	ScanHint      ScanHint
	ScanDirection ScanDirection

	VisualizeTears     bool
	VisualizeScanRange bool
}

// Normalize applies the documented safety coercions: a StepSize of 0 would
// never advance the sampling window, so it is treated as 1 (spec.md §4.5,
// Design Notes §9 open question, resolved in SPEC_FULL.md §10.2).
func (c Config) Normalize() Config {
	if c.StepSize == 0 {
		c.StepSize = 1
	}
	if c.WindowLength == 0 {
		c.WindowLength = 1
	}
	if c.MatchesRequired == 0 {
		c.MatchesRequired = 1
	}
	return c
}
