package scaler

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/vidcapture/vcs/frame"
)

// Scaler resizes a BGRA pixel buffer from one resolution to another. It is
// the last stage before presentation/recording and is specified but not
// owned by the core (spec.md §2, §4).
type Scaler interface {
	Scale(pixels []byte, from, to frame.Resolution) []byte
}

// Bilinear is the default Scaler, backed by golang.org/x/image/draw's
// bilinear interpolator.
type Bilinear struct{}

// Scale returns a new buffer of to.ByteSize() holding pixels resized from
// from to to. An equal from/to resolution returns pixels unchanged.
func (Bilinear) Scale(pixels []byte, from, to frame.Resolution) []byte {
	if from == to {
		return pixels
	}
	src := &image.RGBA{
		Pix:    bgraToRGBA(pixels),
		Stride: int(from.Width) * 4,
		Rect:   image.Rect(0, 0, int(from.Width), int(from.Height)),
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(to.Width), int(to.Height)))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return rgbaToBGRA(dst.Pix)
}

func bgraToRGBA(pixels []byte) []byte {
	out := make([]byte, len(pixels))
	for i := 0; i+3 < len(pixels); i += 4 {
		out[i+0] = pixels[i+2]
		out[i+1] = pixels[i+1]
		out[i+2] = pixels[i+0]
		out[i+3] = pixels[i+3]
	}
	return out
}

func rgbaToBGRA(pixels []byte) []byte {
	return bgraToRGBA(pixels) // the swap is its own inverse
}
