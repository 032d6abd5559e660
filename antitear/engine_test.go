package antitear

import (
	"bytes"
	"testing"

	"github.com/vidcapture/vcs/frame"
)

const (
	testWidth  = 4
	testHeight = 8
)

var testResolution = frame.Resolution{Width: testWidth, Height: testHeight, BitsPerPixel: 32}

// solidFrame returns a frame of testResolution where every pixel of every
// row in rowColors[i] has that color; rowColors must have testHeight
// entries, each [3]byte{B, G, R}.
func solidFrame(rowColors [][3]byte) []byte {
	buf := make([]byte, testResolution.ByteSize())
	for y := 0; y < testHeight; y++ {
		c := rowColors[y]
		for x := 0; x < testWidth; x++ {
			idx := (y*testWidth + x) * 4
			buf[idx+0] = c[0]
			buf[idx+1] = c[1]
			buf[idx+2] = c[2]
			buf[idx+3] = 255
		}
	}
	return buf
}

var colorA = [3]byte{10, 10, 10}
var colorB = [3]byte{200, 200, 200}
var colorC = [3]byte{40, 220, 40}

func sensitiveConfig() Config {
	return Config{
		StartRowOffset:  0,
		EndRowOffset:    0,
		Threshold:       10,
		WindowLength:    1,
		StepSize:        1,
		MatchesRequired: 1,
		ScanHint:        OneTear,
		ScanDirection:   Down,
	}
}

func uniform(c [3]byte) [][3]byte {
	out := make([][3]byte, testHeight)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestNoTearPassthrough(t *testing.T) {
	e := NewEngine(sensitiveConfig(), testResolution, nil)
	in := solidFrame(uniform(colorA))

	out := e.Process(in, testResolution)

	if !bytes.Equal(out, in) {
		t.Fatalf("expected passthrough on first (baseline) frame")
	}
}

func TestSingleTearDown(t *testing.T) {
	e := NewEngine(sensitiveConfig(), testResolution, nil)

	// Establish a baseline front buffer of color A.
	e.Process(solidFrame(uniform(colorA)), testResolution)

	// Capture mid-scanout: rows 0-3 are still A, rows 4-7 already show B.
	tearRow := uint32(4)
	mixed := make([][3]byte, testHeight)
	for y := 0; y < testHeight; y++ {
		if uint32(y) < tearRow {
			mixed[y] = colorA
		} else {
			mixed[y] = colorB
		}
	}
	out := e.Process(solidFrame(mixed), testResolution)

	// The reconstruction is not complete yet; the presented frame is still
	// the old, fully-A baseline.
	if !bytes.Equal(out, solidFrame(uniform(colorA))) {
		t.Fatalf("expected baseline frame still presented mid-tear")
	}

	// Next capture: scanout has caught up, the whole frame now reads B.
	out = e.Process(solidFrame(uniform(colorB)), testResolution)
	if !bytes.Equal(out, solidFrame(uniform(colorB))) {
		t.Fatalf("expected fully reconstructed B frame after tear completes")
	}
}

func TestMultipleTears(t *testing.T) {
	cfg := sensitiveConfig()
	cfg.ScanHint = MultipleTears
	e := NewEngine(cfg, testResolution, nil)

	e.Process(solidFrame(uniform(colorA)), testResolution)

	// Three generations visible in one capture: rows 0-1 oldest (A), rows
	// 2-3 middle (B), rows 4-7 newest (C).
	gen := make([][3]byte, testHeight)
	for y := 0; y < testHeight; y++ {
		switch {
		case y < 2:
			gen[y] = colorA
		case y < 4:
			gen[y] = colorB
		default:
			gen[y] = colorC
		}
	}
	e.Process(solidFrame(gen), testResolution)

	// Scanout catches up fully to C.
	out := e.Process(solidFrame(uniform(colorC)), testResolution)
	if !bytes.Equal(out, solidFrame(uniform(colorC))) {
		t.Fatalf("expected fully reconstructed C frame after multi-tear settles")
	}
}

func TestScanDirectionUpMatchesDownBitForBit(t *testing.T) {
	cfg := sensitiveConfig()
	downEngine := NewEngine(cfg, testResolution, nil)

	upCfg := cfg
	upCfg.ScanDirection = Up
	upEngine := NewEngine(upCfg, testResolution, nil)

	baseline := solidFrame(uniform(colorA))
	downEngine.Process(baseline, testResolution)
	upEngine.Process(flipped(baseline), testResolution)

	mixed := make([][3]byte, testHeight)
	for y := 0; y < testHeight; y++ {
		if y < 4 {
			mixed[y] = colorA
		} else {
			mixed[y] = colorB
		}
	}
	downOut := append([]byte(nil), downEngine.Process(solidFrame(mixed), testResolution)...)
	upOut := append([]byte(nil), upEngine.Process(flipped(solidFrame(mixed)), testResolution)...)

	if !bytes.Equal(downOut, flipped(upOut)) {
		t.Fatalf("expected Up-direction output to be the vertical flip of Down-direction output")
	}

	downFinal := downEngine.Process(solidFrame(uniform(colorB)), testResolution)
	upFinal := upEngine.Process(flipped(solidFrame(uniform(colorB))), testResolution)
	if !bytes.Equal(downFinal, flipped(upFinal)) {
		t.Fatalf("expected final reconstructed frames to match after flipping")
	}
}

func flipped(buf []byte) []byte {
	out := make([]byte, len(buf))
	flipRowsInto(out, buf, testResolution)
	return out
}

func TestBisectionConvergesOnSingleRowRange(t *testing.T) {
	e := NewEngine(sensitiveConfig(), testResolution, nil)
	e.Process(solidFrame(uniform(colorA)), testResolution) // seeds e.front with A

	row := e.bisectFirstNewRow(solidFrame(uniform(colorB)), testResolution, 3, 3)
	if row != 3 {
		t.Fatalf("expected bisection over a one-row range to return that row, got %d", row)
	}
}

func TestRowChangedIsIdempotent(t *testing.T) {
	cfg := sensitiveConfig()
	a := solidFrame(uniform(colorA))
	b := solidFrame(uniform(colorB))

	first := rowChanged(cfg, 2, testWidth, b, a)
	second := rowChanged(cfg, 2, testWidth, b, a)
	if first != second {
		t.Fatalf("rowChanged is not deterministic across repeated calls with identical inputs")
	}
	if !first {
		t.Fatal("expected a genuinely different row to be reported changed")
	}

	if rowChanged(cfg, 2, testWidth, a, a) {
		t.Fatal("expected identical rows to never be reported changed")
	}
}

func TestComputeScanRangeClampsOffsets(t *testing.T) {
	start, end := computeScanRange(testHeight, 0, 0)
	if start != 0 || end != testHeight-1 {
		t.Fatalf("expected full range with zero offsets, got [%d,%d]", start, end)
	}

	start, end = computeScanRange(testHeight, 100, 100)
	if start > end {
		t.Fatalf("expected clamped range to remain non-inverted, got [%d,%d]", start, end)
	}
}
