package filter

import (
	"image"
	"image/color"

	"github.com/vidcapture/vcs/frame"
)

// bgraImageType adapts a 32-bit BGRA byte buffer to image.Image and
// draw.Image, following the shape of the standard library's image.RGBA,
// so the filter package can drive golang.org/x/image/draw against capture
// buffers without a channel-order conversion pass.
type bgraImageType struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func newBGRAImage(w, h int) *bgraImageType {
	return &bgraImageType{Pix: make([]byte, w*h*4), Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
}

// bgraImage views pixels (laid out per r) as a bgraImageType without
// copying.
func bgraImage(pixels []byte, r frame.Resolution) *bgraImageType {
	return &bgraImageType{Pix: pixels, Stride: int(r.Width) * 4, Rect: image.Rect(0, 0, int(r.Width), int(r.Height))}
}

func rect(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1, y1)
}

func (p *bgraImageType) ColorModel() color.Model { return color.RGBAModel }

func (p *bgraImageType) Bounds() image.Rectangle { return p.Rect }

func (p *bgraImageType) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *bgraImageType) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i+0], A: p.Pix[i+3]}
}

func (p *bgraImageType) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.Pix[i+0] = rgba.B
	p.Pix[i+1] = rgba.G
	p.Pix[i+2] = rgba.R
	p.Pix[i+3] = rgba.A
}

func (p *bgraImageType) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &bgraImageType{Rect: r}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &bgraImageType{Pix: p.Pix[i:], Stride: p.Stride, Rect: r}
}
