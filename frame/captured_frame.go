package frame

import "time"

// PixelFormat identifies the channel layout of a frame's pixel bytes. The
// core's anti-tear engine and filter graph only operate on FormatBGRA32;
// any other format must be converted by the backend before the frame
// reaches the coordinator (spec.md §3).
type PixelFormat int

const (
	FormatBGRA32 PixelFormat = iota
	FormatRGB24
	FormatRGB16
)

// CapturedFrame is a single frame as owned by a capture backend. It is
// created once, at backend initialization, with MaxFrameBytes of capacity,
// and is overwritten in place by each new capture; the coordinator only
// ever borrows it read-only between a NewFrame event and the matching
// MarkFrameBufferAsProcessed call (spec.md §3, §4.2).
type CapturedFrame struct {
	Resolution  Resolution
	Pixels      []byte
	Timestamp   time.Time
	PixelFormat PixelFormat
	Processed   bool
}

// NewCapturedFrame allocates a CapturedFrame with MaxFrameBytes of backing
// storage, matching the teacher's pattern of pre-sizing buffers once at
// device-open time (device.Device.buffers) rather than per frame.
func NewCapturedFrame() *CapturedFrame {
	return &CapturedFrame{
		Pixels: make([]byte, MaxFrameBytes),
	}
}

// Slice returns the portion of Pixels that holds valid data for the
// frame's current Resolution.
func (f *CapturedFrame) Slice() []byte {
	n := f.Resolution.ByteSize()
	if int(n) > len(f.Pixels) {
		n = uint32(len(f.Pixels))
	}
	return f.Pixels[:n]
}
