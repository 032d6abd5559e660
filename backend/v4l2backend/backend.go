//go:build linux

package v4l2backend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
	"golang.org/x/sys/unix"

	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/capture"
	"github.com/vidcapture/vcs/frame"
)

// videoInputSet is VIDIOC_S_INPUT (_IOWR('V', 26, int)): go4vl's v4l2
// package exposes GetCurrentVideoInputIndex but never added a setter, so
// this backend issues the ioctl directly through golang.org/x/sys/unix
// rather than patching go4vl's cgo surface for one call.
const videoInputSet = 0xc004561a

// Backend adapts a *device.Device (go4vl's V4L2 capture wrapper) to the
// capture.Backend interface (spec.md §4.2). It owns one background
// goroutine that drains device.Device.GetOutput(), converts each frame to
// BGRA32, and stages it for the coordinator's poll loop.
type Backend struct {
	dev    *device.Device
	logger *slog.Logger
	pool   *capture.FramePool

	mu    sync.Mutex
	queue *capevent.Queue
	buf   *frame.CapturedFrame

	srcFormat v4l2.FourCCType
	fps       uint32
	minRes    frame.Resolution
	maxRes    frame.Resolution
	receiving bool

	// lastRawYUYV holds a copy of the most recent frame's undecoded bytes
	// when the source format is YUYV, for DebugSnapshotYUYV.
	lastRawYUYV []byte

	missed atomic.Uint64

	cancel context.CancelFunc
	done   chan struct{}
}

// Open opens the V4L2 device at path and wraps it as a capture.Backend.
// opts are go4vl's own functional options (device.WithBufferSize,
// device.WithPixFormat, device.WithFPS, ...); logger may be nil.
func Open(path string, logger *slog.Logger, opts ...device.Option) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]device.Option{device.WithVideoCaptureEnabled()}, opts...)
	dev, err := device.Open(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("v4l2backend: open %s: %w", path, err)
	}

	pixFmt, err := dev.GetPixFormat()
	if err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("v4l2backend: %s: get pix format: %w", path, err)
	}
	fps, err := dev.GetFrameRate()
	if err != nil {
		fps = 0
	}

	b := &Backend{
		dev:       dev,
		logger:    logger,
		pool:      capture.NewFramePool(int(frame.MaxFrameBytes)),
		queue:     capevent.NewQueue(),
		buf:       frame.NewCapturedFrame(),
		srcFormat: pixFmt.PixelFormat,
		fps:       fps,
	}
	b.minRes, b.maxRes = deviceBounds(dev, pixFmt)
	b.buf.Resolution = frame.Resolution{Width: pixFmt.Width, Height: pixFmt.Height, BitsPerPixel: 32}
	b.buf.PixelFormat = frame.FormatBGRA32

	return b, nil
}

// deviceBounds enumerates the driver's supported frame sizes for the
// active pixel format (VIDIOC_ENUM_FRAMESIZES) and reduces them to a
// single [min, max] envelope, since the core's videomode.Resolver only
// needs bounds, not the full discrete/stepwise list (spec.md §4.4).
func deviceBounds(dev *device.Device, pixFmt v4l2.PixFormat) (min, max frame.Resolution) {
	sizes, err := v4l2.GetFormatFrameSizes(dev.Fd(), pixFmt.PixelFormat)
	if err != nil || len(sizes) == 0 {
		r := frame.Resolution{Width: pixFmt.Width, Height: pixFmt.Height, BitsPerPixel: 32}
		return r, r
	}
	min = frame.Resolution{Width: sizes[0].Size.MinWidth, Height: sizes[0].Size.MinHeight, BitsPerPixel: 32}
	max = frame.Resolution{Width: sizes[0].Size.MaxWidth, Height: sizes[0].Size.MaxHeight, BitsPerPixel: 32}
	for _, s := range sizes[1:] {
		if s.Size.MinWidth < min.Width {
			min.Width = s.Size.MinWidth
		}
		if s.Size.MinHeight < min.Height {
			min.Height = s.Size.MinHeight
		}
		if s.Size.MaxWidth > max.Width {
			max.Width = s.Size.MaxWidth
		}
		if s.Size.MaxHeight > max.Height {
			max.Height = s.Size.MaxHeight
		}
	}
	return min, max
}

// Initialize starts the device's capture stream and the conversion pump.
func (b *Backend) Initialize() error {
	ctx, cancel := context.WithCancel(context.Background())
	if err := b.dev.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("v4l2backend: start: %w", err)
	}
	b.cancel = cancel
	b.done = make(chan struct{})
	b.receiving = true

	b.mu.Lock()
	b.queue.Push(capevent.EventNewVideoMode)
	b.mu.Unlock()

	go b.pump()
	return nil
}

// Release stops the pump and the device stream and closes the device.
func (b *Backend) Release() error {
	if b.cancel != nil {
		b.cancel()
	}
	if b.done != nil {
		<-b.done
	}
	return b.dev.Close()
}

// pump drains converted frames from the device's output channel into the
// shared CapturedFrame buffer. It never blocks on CaptureMutex: if the
// coordinator is mid-read, the frame is dropped and counted as missed,
// matching the non-blocking producer contract capture.Backend documents.
func (b *Backend) pump() {
	defer close(b.done)
	out := b.dev.GetOutput()
	for raw := range out {
		if len(raw) == 0 {
			continue
		}

		// Stage a copy out of the pool immediately: device.Device.GetOutput
		// documents that raw is part of an internal ring buffer overwritten
		// by the next dequeue, and the conversion below may run after
		// CaptureMutex contention has delayed us.
		staged := b.pool.Get(uint32(len(raw)))
		copy(staged, raw)

		if !b.mu.TryLock() {
			b.missed.Add(1)
			b.pool.Put(staged)
			continue
		}
		w, h := b.buf.Resolution.Width, b.buf.Resolution.Height
		dst := b.buf.Pixels[:frame.Resolution{Width: w, Height: h, BitsPerPixel: 32}.ByteSize()]
		if err := convertToBGRA32(dst, staged, b.srcFormat, w, h); err != nil {
			b.logger.Error("v4l2backend: frame conversion failed", "error", err)
		} else {
			b.buf.Timestamp = time.Now()
			b.buf.Processed = false
			b.queue.Push(capevent.EventNewFrame)
			if b.srcFormat == v4l2.PixelFmtYUYV {
				b.lastRawYUYV = append(b.lastRawYUYV[:0], staged...)
			}
		}
		b.mu.Unlock()
		b.pool.Put(staged)
	}

	b.mu.Lock()
	if b.receiving {
		b.queue.Push(capevent.EventUnrecoverableError)
	}
	b.receiving = false
	b.mu.Unlock()
}

func (b *Backend) PopCaptureEvent() capevent.Event { return b.queue.Pop() }
func (b *Backend) FrameBuffer() *frame.CapturedFrame { return b.buf }
func (b *Backend) MarkFrameBufferAsProcessed()       { b.buf.Processed = true }
func (b *Backend) CaptureMutex() *sync.Mutex         { return &b.mu }

func (b *Backend) CaptureResolution() frame.Resolution {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Resolution
}

func (b *Backend) CaptureRefreshRate() uint32 {
	return b.fps * 1000
}

func (b *Backend) DeviceMinResolution() frame.Resolution { return b.minRes }
func (b *Backend) DeviceMaxResolution() frame.Resolution { return b.maxRes }

func (b *Backend) MissedFramesCount() uint64 { return b.missed.Load() }
func (b *Backend) ResetMissedFramesCount()    { b.missed.Store(0) }

func (b *Backend) HasValidSignal() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.receiving
}

func (b *Backend) IsReceivingSignal() bool { return b.HasValidSignal() }

// ForceCaptureResolution restarts the stream at the requested resolution,
// keeping the device's current FourCC. This is the backend-side half of
// spec.md §4.4's alias-correction round trip: the resolver calls this when
// it decides the proposed mode should be replaced by an aliased one.
func (b *Backend) ForceCaptureResolution(r frame.Resolution) error {
	// Clear receiving first, so the pump exiting on cancel does not queue
	// the deliberate stop as an unrecoverable error.
	b.mu.Lock()
	b.receiving = false
	b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
	if b.done != nil {
		<-b.done
	}
	if err := b.dev.Stop(); err != nil {
		return fmt.Errorf("v4l2backend: force resolution: stop: %w", err)
	}

	pixFmt, err := b.dev.GetPixFormat()
	if err != nil {
		return fmt.Errorf("v4l2backend: force resolution: get format: %w", err)
	}
	pixFmt.Width, pixFmt.Height = r.Width, r.Height
	if err := b.dev.SetPixFormat(pixFmt); err != nil {
		return fmt.Errorf("v4l2backend: force resolution: set format: %w", err)
	}

	b.mu.Lock()
	b.buf.Resolution = frame.Resolution{Width: r.Width, Height: r.Height, BitsPerPixel: 32}
	b.mu.Unlock()

	return b.Initialize()
}

// SetInputChannel switches the device's active video input (VIDIOC_S_INPUT),
// issued directly via golang.org/x/sys/unix since go4vl's v4l2 package only
// exposes the getter.
func (b *Backend) SetInputChannel(index uint32) error {
	if err := unix.IoctlSetInt(int(b.dev.Fd()), videoInputSet, int(index)); err != nil {
		return fmt.Errorf("v4l2backend: set input %d: %w", index, err)
	}
	return nil
}

// DebugSnapshotYUYV returns a copy of the most recently captured frame's
// raw bytes and resolution, for one-shot diagnostic dumps (vcsctl's
// -snapshot flag via imgsupport.Yuyv2Jpeg). ok is false if no YUYV frame
// has arrived yet, or the device isn't capturing YUYV.
func (b *Backend) DebugSnapshotYUYV() (data []byte, r frame.Resolution, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.srcFormat != v4l2.PixelFmtYUYV || len(b.lastRawYUYV) == 0 {
		return nil, frame.Resolution{}, false
	}
	return append([]byte(nil), b.lastRawYUYV...), b.buf.Resolution, true
}

var _ capture.Backend = (*Backend)(nil)
