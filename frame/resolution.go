package frame

import "fmt"

// MaxResolution is the largest frame size the core's fixed-capacity buffers
// (anti-tear back/front/present buffers, frame pool default) are sized for:
// 1920x1080 at 32 bits per pixel. A backend proposing a larger resolution
// must be rejected before it reaches the anti-tear engine (spec.md §4.5.5).
var MaxResolution = Resolution{Width: 1920, Height: 1080, BitsPerPixel: 32}

// MaxFrameBytes is the byte capacity every fixed-size frame buffer in the
// core (CapturedFrame.Pixels, antitear buffers) is allocated with.
const MaxFrameBytes = 1920 * 1080 * 4

// Resolution describes a frame's dimensions and color depth.
//
// Invariant: BitsPerPixel is one of 16, 24, or 32, and ByteSize() must not
// exceed MaxFrameBytes. The core's anti-tear engine and filter graph assume
// a runtime pixel format of 32-bit BGRA; any 16-bit capture mode must be
// converted to 32-bit upstream by the capture backend before it reaches the
// coordinator.
type Resolution struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint32
}

// ByteSize returns the number of bytes required to hold one frame at this
// resolution.
func (r Resolution) ByteSize() uint32 {
	return r.Width * r.Height * r.BitsPerPixel / 8
}

// Valid reports whether the resolution has a supported bit depth and fits
// within MaxFrameBytes.
func (r Resolution) Valid() bool {
	switch r.BitsPerPixel {
	case 16, 24, 32:
	default:
		return false
	}
	return r.ByteSize() <= MaxFrameBytes
}

// WithinBounds reports whether r's width and height fall within [min, max]
// inclusive, ignoring bit depth. Used by the video-mode resolver to decide
// whether a proposed or forced resolution is one the device can honor.
func (r Resolution) WithinBounds(min, max Resolution) bool {
	return r.Width >= min.Width && r.Width <= max.Width &&
		r.Height >= min.Height && r.Height <= max.Height
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d@%dbpp", r.Width, r.Height, r.BitsPerPixel)
}

// RateComparator determines how a VideoMode's refresh rate is compared
// against a candidate value.
type RateComparator int

const (
	RateEquals RateComparator = iota
	RateCeiled
	RateFloored
	RateRounded
)

// VideoMode describes a capture resolution paired with a refresh rate,
// expressed in milli-Hz to avoid floating point drift across repeated
// comparisons.
type VideoMode struct {
	Resolution    Resolution
	RefreshRateMHz uint32
}

// Valid reports whether the mode's resolution falls within the device's
// reported [min, max] bounds.
func (m VideoMode) Valid(deviceMin, deviceMax Resolution) bool {
	return m.Resolution.WithinBounds(deviceMin, deviceMax)
}

// Matches compares two refresh rates according to cmp.
func Matches(a, b uint32, cmp RateComparator) bool {
	switch cmp {
	case RateCeiled:
		return a >= b
	case RateFloored:
		return a <= b
	case RateRounded:
		// Within half a Hz (500 mHz) counts as a match.
		diff := int64(a) - int64(b)
		if diff < 0 {
			diff = -diff
		}
		return diff <= 500
	default:
		return a == b
	}
}

func (m VideoMode) String() string {
	return fmt.Sprintf("%s@%d.%03dHz", m.Resolution, m.RefreshRateMHz/1000, m.RefreshRateMHz%1000)
}
