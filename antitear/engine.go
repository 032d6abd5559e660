package antitear

import (
	"fmt"
	"log/slog"

	"github.com/vidcapture/vcs/frame"
)

// nextAction is the one-tear-per-frame state machine's discriminator
// (spec.md §3, "AntiTearState").
type nextAction int

const (
	actionScanForTear nextAction = iota
	actionCopyRestOfPixelData
)

// Engine reconstructs whole frames from a sequence of torn captures. It
// owns two reconstruction buffers (back, front, swapped rather than
// copied on each completed reconstruction) and one present buffer, all
// sized for the maximum resolution given at construction (spec.md §3, §4.5).
type Engine struct {
	cfg           Config
	maxResolution frame.Resolution
	logger        *slog.Logger

	back, front, present []byte
	scratch              []byte // holds a vertically-flipped copy when ScanDirection == Up

	tornRows []uint32

	// one-tear-per-frame state
	action      nextAction
	lastTearRow int // -1 means "no tear recorded"

	// multiple-tears-per-frame state
	prevTearRow uint32

	scanStartRow, scanEndRow uint32
}

// NewEngine allocates an Engine whose buffers are sized for maxResolution.
// cfg is normalized per Config.Normalize.
func NewEngine(cfg Config, maxResolution frame.Resolution, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	size := maxResolution.ByteSize()
	return &Engine{
		cfg:           cfg.Normalize(),
		maxResolution: maxResolution,
		logger:        logger,
		back:          make([]byte, size),
		front:         make([]byte, size),
		present:       make([]byte, size),
		scratch:       make([]byte, size),
		lastTearRow:   -1,
		prevTearRow:   maxResolution.Height,
	}
}

// SetConfig replaces the engine's tuning parameters. Safe to call between
// frames; the engine carries no per-config cached state that would be
// invalidated by a live edit.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg.Normalize()
}

// Config returns the engine's current configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// TornRows returns the row indices recorded as tears during the most
// recent Process call, for visualization or diagnostics. The list is
// cleared at the start of every Process call.
func (e *Engine) TornRows() []uint32 {
	return append([]uint32(nil), e.tornRows...)
}

// Process feeds one captured (possibly torn) frame through the engine and
// returns the current present buffer: a fully reconstructed frame if one
// has been assembled, or the best frame available so far otherwise
// (spec.md §4.5.2-§4.5.4).
//
// pixels must be non-nil and resolution must not exceed the resolution the
// engine was constructed with; violating either is a caller bug and panics
// (spec.md §4.5.5).
func (e *Engine) Process(pixels []byte, resolution frame.Resolution) []byte {
	if pixels == nil {
		panic("antitear: Process: nil pixel buffer")
	}
	if resolution.Width > e.maxResolution.Width || resolution.Height > e.maxResolution.Height {
		panic(fmt.Sprintf("antitear: frame %v exceeds the engine's maximum resolution %v", resolution, e.maxResolution))
	}

	e.scanStartRow, e.scanEndRow = computeScanRange(resolution.Height, e.cfg.StartRowOffset, e.cfg.EndRowOffset)
	e.tornRows = e.tornRows[:0]

	input := pixels
	if e.cfg.ScanDirection == Up {
		flipRowsInto(e.scratch, pixels, resolution)
		input = e.scratch
	}

	switch e.cfg.ScanHint {
	case MultipleTears:
		e.processMultipleTears(input, resolution, false, 0)
	default:
		e.processOneTear(input, resolution)
	}

	return e.presentFrontBuffer(resolution)
}

// computeScanRange clamps the configured start/end row offsets into a
// valid, inclusive [start, end] range of rows for a frame of the given
// height (zero offsets give [0, height-1]), per spec.md
// §4.5 ("start_row_offset, end_row_offset (end is from bottom up; clamped
// to valid row range)").
func computeScanRange(height, startOffset, endOffset uint32) (start, end uint32) {
	if height == 0 {
		return 0, 0
	}
	maxValidRow := height - 1

	endRow := int64(height) - int64(endOffset) - 1
	if endRow < 0 {
		endRow = 0
	}
	if endRow > int64(maxValidRow) {
		endRow = int64(maxValidRow)
	}

	startRow := int64(startOffset)
	if startRow > endRow {
		startRow = endRow
	}
	if startRow > int64(maxValidRow) {
		startRow = int64(maxValidRow)
	}

	return uint32(startRow), uint32(endRow)
}

// copyRows copies rows [fromRow, toRow) of src into dst, both assumed to
// hold frames of resolution r. fromRow > toRow is a non-fatal configuration
// error: it is logged and skipped (spec.md §4.5.5).
func (e *Engine) copyRows(dst, src []byte, r frame.Resolution, fromRow, toRow uint32) {
	if fromRow == toRow {
		return
	}
	if fromRow > toRow || toRow > r.Height {
		e.logger.Debug("antitear: copyRows: invalid row range, skipping", "from", fromRow, "to", toRow, "height", r.Height)
		return
	}
	const bpp = 4
	start := fromRow * r.Width * bpp
	end := toRow * r.Width * bpp
	copy(dst[start:end], src[start:end])
}

func flipRowsInto(dst, src []byte, r frame.Resolution) {
	const bpp = 4
	rowBytes := r.Width * bpp
	for y := uint32(0); y < r.Height; y++ {
		srcRow := src[y*rowBytes : y*rowBytes+rowBytes]
		dstStart := (r.Height - 1 - y) * rowBytes
		copy(dst[dstStart:dstStart+rowBytes], srcRow)
	}
}
