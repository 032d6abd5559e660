//go:build linux

package v4l2backend

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/vladimirvivien/go4vl/v4l2"
)

// convertToBGRA32 converts one captured frame from its device pixel format
// into dst, which must be exactly width*height*4 bytes, as 32-bit BGRA
// (spec.md §3: "any other format must be converted by the backend before
// the frame reaches the coordinator").
func convertToBGRA32(dst, src []byte, format v4l2.FourCCType, width, height uint32) error {
	switch format {
	case v4l2.PixelFmtYUYV:
		return yuyvToBGRA(dst, src, width, height)
	case v4l2.PixelFmtRGB24:
		return rgb24ToBGRA(dst, src, width, height)
	case v4l2.PixelFmtGrey:
		return greyToBGRA(dst, src, width, height)
	case v4l2.PixelFmtMJPEG, v4l2.PixelFmtJPEG:
		return jpegToBGRA(dst, src, width, height)
	default:
		return fmt.Errorf("v4l2backend: unsupported pixel format %s", v4l2.PixelFormats[format])
	}
}

// yuyvToBGRA unpacks YUV 4:2:2 (two luma samples sharing one chroma pair)
// into BGRA using the ITU-R BT.601 conversion.
func yuyvToBGRA(dst, src []byte, width, height uint32) error {
	need := int(width) * int(height) * 2
	if len(src) < need {
		return fmt.Errorf("v4l2backend: yuyv frame too short: got %d, want %d", len(src), need)
	}
	pixels := int(width) * int(height)
	for i := 0; i < pixels/2; i++ {
		o := i * 4
		y0, u, y1, v := src[o], src[o+1], src[o+2], src[o+3]
		r0, g0, b0 := ycbcrToRGB(y0, u, v)
		r1, g1, b1 := ycbcrToRGB(y1, u, v)

		di := i * 8
		dst[di+0], dst[di+1], dst[di+2], dst[di+3] = b0, g0, r0, 0xFF
		dst[di+4], dst[di+5], dst[di+6], dst[di+7] = b1, g1, r1, 0xFF
	}
	return nil
}

func ycbcrToRGB(y, u, v byte) (r, g, b byte) {
	c := int(y) - 16
	d := int(u) - 128
	e := int(v) - 128
	r = clampByteC((298*c + 409*e + 128) >> 8)
	g = clampByteC((298*c - 100*d - 208*e + 128) >> 8)
	b = clampByteC((298*c + 516*d + 128) >> 8)
	return
}

func clampByteC(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// rgb24ToBGRA swaps channel order and appends an opaque alpha byte.
func rgb24ToBGRA(dst, src []byte, width, height uint32) error {
	need := int(width) * int(height) * 3
	if len(src) < need {
		return fmt.Errorf("v4l2backend: rgb24 frame too short: got %d, want %d", len(src), need)
	}
	pixels := int(width) * int(height)
	for i := 0; i < pixels; i++ {
		si := i * 3
		di := i * 4
		r, g, b := src[si], src[si+1], src[si+2]
		dst[di+0], dst[di+1], dst[di+2], dst[di+3] = b, g, r, 0xFF
	}
	return nil
}

// greyToBGRA replicates the single luma channel across B, G and R.
func greyToBGRA(dst, src []byte, width, height uint32) error {
	need := int(width) * int(height)
	if len(src) < need {
		return fmt.Errorf("v4l2backend: grey frame too short: got %d, want %d", len(src), need)
	}
	for i := 0; i < need; i++ {
		y := src[i]
		di := i * 4
		dst[di+0], dst[di+1], dst[di+2], dst[di+3] = y, y, y, 0xFF
	}
	return nil
}

// jpegToBGRA decodes a Motion-JPEG frame with the standard library's JPEG
// decoder and copies it into dst as BGRA.
func jpegToBGRA(dst, src []byte, width, height uint32) error {
	img, err := jpeg.Decode(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("v4l2backend: decode mjpeg: %w", err)
	}
	b := img.Bounds()
	if uint32(b.Dx()) != width || uint32(b.Dy()) != height {
		return fmt.Errorf("v4l2backend: decoded mjpeg size %dx%d does not match expected %dx%d", b.Dx(), b.Dy(), width, height)
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := colorAt(img, b.Min.X+x, b.Min.Y+y)
			di := (y*b.Dx() + x) * 4
			dst[di+0], dst[di+1], dst[di+2], dst[di+3] = bl, g, r, 0xFF
		}
	}
	return nil
}

func colorAt(img image.Image, x, y int) (r, g, b byte, a byte) {
	cr, cg, cb, ca := img.At(x, y).RGBA()
	return byte(cr >> 8), byte(cg >> 8), byte(cb >> 8), byte(ca >> 8)
}
