package imgsupport

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// Yuyv2Jpeg converts a raw YUYV 4:2:2 frame into a JPEG-encoded image using
// the standard library's YCbCr encoder, for a one-shot debug snapshot
// (vcsctl's -snapshot flag). width must be even, matching YUYV's two-pixel
// chroma subsampling.
func Yuyv2Jpeg(width, height int, frame []byte) ([]byte, error) {
	if width%2 != 0 {
		return nil, fmt.Errorf("imgsupport: yuyv width must be even, got %d", width)
	}
	want := width * height * 2
	if len(frame) < want {
		return nil, fmt.Errorf("imgsupport: yuyv frame too short: got %d, want %d", len(frame), want)
	}

	ycbr := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio422)
	for i := range ycbr.Cb {
		ii := i * 4
		ycbr.Y[i*2] = frame[ii]
		ycbr.Y[i*2+1] = frame[ii+2]
		ycbr.Cb[i] = frame[ii+1]
		ycbr.Cr[i] = frame[ii+3]
	}

	var jpgBuf bytes.Buffer
	if err := jpeg.Encode(&jpgBuf, ycbr, nil); err != nil {
		return nil, err
	}
	return jpgBuf.Bytes(), nil
}
