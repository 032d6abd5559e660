package filter

import (
	"testing"
	"time"

	"github.com/vidcapture/vcs/frame"
)

func TestNewNodeSeedsDefaults(t *testing.T) {
	n, err := NewNode(TypeBlur)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := n.Parameter(0)
	if !ok || v != 10 {
		t.Fatalf("expected default radius 10, got %v, ok=%v", v, ok)
	}
}

func TestSetParameterClampsToRange(t *testing.T) {
	n, _ := NewNode(TypeBlur)
	if err := n.SetParameter(0, 999999, false); err != nil {
		t.Fatal(err)
	}
	v, _ := n.Parameter(0)
	if v != 200 {
		t.Fatalf("expected clamp to max 200, got %v", v)
	}
}

func TestSetParameterFiresChangeEventUnlessSuppressed(t *testing.T) {
	n, _ := NewNode(TypeBlur)
	var fired bool
	n.OnParameterChanged = func(id uint32, value float64) { fired = true }

	n.SetParameter(0, 5, true)
	if fired {
		t.Fatal("expected suppressed change to not fire")
	}
	n.SetParameter(0, 5, false)
	if !fired {
		t.Fatal("expected unsuppressed change to fire")
	}
}

func TestUnknownTypeIDErrors(t *testing.T) {
	if _, err := NewNode(TypeID(999)); err == nil {
		t.Fatal("expected error for unknown type id")
	}
}

func TestChainMatchesByExactGates(t *testing.T) {
	g := NewGraph()
	in := frame.Resolution{Width: 640, Height: 480, BitsPerPixel: 32}
	out := frame.Resolution{Width: 1280, Height: 720, BitsPerPixel: 32}

	c := &Chain{InputGate: Gate{Resolution: in}, OutputGate: Gate{Resolution: out}}
	g.AddChain(c)

	if g.FindChain(in, out) != c {
		t.Fatal("expected chain to match its exact gates")
	}
	if g.FindChain(out, in) != nil {
		t.Fatal("expected no match for swapped gates")
	}
}

func TestGraphApplyNoMatchReturnsUnchanged(t *testing.T) {
	g := NewGraph()
	pixels := []byte{1, 2, 3, 4}
	r := frame.Resolution{Width: 1, Height: 1, BitsPerPixel: 32}
	out := g.Apply(pixels, r, r, time.Now())
	if out[0] != 1 || out[1] != 2 || out[2] != 3 || out[3] != 4 {
		t.Fatal("expected pixels unchanged when no chain matches")
	}
}

func TestGraphApplyDisabledReturnsUnchanged(t *testing.T) {
	g := NewGraph()
	g.Enabled = false
	r := frame.Resolution{Width: 2, Height: 2, BitsPerPixel: 32}
	c := &Chain{InputGate: Gate{Resolution: r}, OutputGate: Gate{Resolution: r}}
	n, _ := NewNode(TypeFlip)
	n.SetParameter(0, flipBoth, true)
	c.Nodes = append(c.Nodes, n)
	g.AddChain(c)

	pixels := make([]byte, r.ByteSize())
	for i := range pixels {
		pixels[i] = byte(i)
	}
	before := append([]byte(nil), pixels...)
	g.Apply(pixels, r, r, time.Now())

	for i := range pixels {
		if pixels[i] != before[i] {
			t.Fatal("expected pixels unchanged when filtering is globally disabled")
		}
	}
}

func TestCropRejectsOutOfBoundsWithoutMutating(t *testing.T) {
	n, _ := NewNode(TypeCrop)
	n.SetParameter(2, 100, true) // w
	n.SetParameter(3, 100, true) // h
	r := frame.Resolution{Width: 10, Height: 10, BitsPerPixel: 32}
	pixels := make([]byte, r.ByteSize())
	for i := range pixels {
		pixels[i] = 0xAB
	}
	before := append([]byte(nil), pixels...)

	n.Apply(pixels, r, time.Now())

	for i := range pixels {
		if pixels[i] != before[i] {
			t.Fatal("expected out-of-bounds crop rectangle to leave pixels untouched")
		}
	}
}

func TestFlipHorizontalSwapsColumns(t *testing.T) {
	r := frame.Resolution{Width: 2, Height: 1, BitsPerPixel: 32}
	pixels := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	flipHoriz(pixels, 2, 1)
	want := []byte{5, 6, 7, 8, 1, 2, 3, 4}
	for i := range want {
		if pixels[i] != want[i] {
			t.Fatalf("flipHoriz: got %v, want %v", pixels, want)
		}
	}
	_ = r
}

func TestDecimateNoopBelowFactorTwo(t *testing.T) {
	// The registry clamps factor to at least 2, so a factor of 1 is passed
	// to the filter implementation directly.
	f := &decimateFilter{}
	r := frame.Resolution{Width: 4, Height: 4, BitsPerPixel: 32}
	pixels := make([]byte, r.ByteSize())
	for i := range pixels {
		pixels[i] = byte(i)
	}
	before := append([]byte(nil), pixels...)
	f.Apply(pixels, r, map[uint32]float64{0: 1}, time.Now())
	for i := range pixels {
		if pixels[i] != before[i] {
			t.Fatal("expected factor < 2 to be a no-op")
		}
	}
}
