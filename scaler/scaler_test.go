package scaler

import (
	"testing"

	"github.com/vidcapture/vcs/frame"
)

func TestBilinearScaleSameResolutionReturnsSameSlice(t *testing.T) {
	r := frame.Resolution{Width: 4, Height: 4, BitsPerPixel: 32}
	pixels := make([]byte, r.ByteSize())
	out := (Bilinear{}).Scale(pixels, r, r)
	if &out[0] != &pixels[0] {
		t.Fatal("expected identical resolutions to skip scaling entirely")
	}
}

func TestBilinearScaleProducesTargetSize(t *testing.T) {
	from := frame.Resolution{Width: 4, Height: 4, BitsPerPixel: 32}
	to := frame.Resolution{Width: 8, Height: 8, BitsPerPixel: 32}
	pixels := make([]byte, from.ByteSize())
	for i := range pixels {
		pixels[i] = byte(i)
	}
	out := (Bilinear{}).Scale(pixels, from, to)
	if uint32(len(out)) != to.ByteSize() {
		t.Fatalf("expected %d bytes, got %d", to.ByteSize(), len(out))
	}
}
