package capture

import (
	"sync"

	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/frame"
)

// fakeBackend is a minimal, in-memory Backend used to drive Coordinator in
// tests without any real hardware.
type fakeBackend struct {
	mu sync.Mutex

	queue       []capevent.Event
	buf         *frame.CapturedFrame
	resolution  frame.Resolution
	refreshRate uint32
	minRes      frame.Resolution
	maxRes      frame.Resolution
	validSignal bool
	receiving   bool
	missed      uint64

	forcedResolution frame.Resolution
	forceErr         error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		buf:         frame.NewCapturedFrame(),
		validSignal: true,
		receiving:   true,
		minRes:      frame.Resolution{Width: 320, Height: 240},
		maxRes:      frame.Resolution{Width: 1920, Height: 1080},
	}
}

func (f *fakeBackend) Initialize() error { return nil }
func (f *fakeBackend) Release() error    { return nil }

func (f *fakeBackend) PopCaptureEvent() capevent.Event {
	if len(f.queue) == 0 {
		return capevent.EventNone
	}
	ev := f.queue[0]
	f.queue = f.queue[1:]
	return ev
}

func (f *fakeBackend) pushEvent(e capevent.Event) { f.queue = append(f.queue, e) }

func (f *fakeBackend) FrameBuffer() *frame.CapturedFrame { return f.buf }
func (f *fakeBackend) MarkFrameBufferAsProcessed()       {}

func (f *fakeBackend) CaptureMutex() *sync.Mutex { return &f.mu }

func (f *fakeBackend) CaptureResolution() frame.Resolution  { return f.resolution }
func (f *fakeBackend) CaptureRefreshRate() uint32            { return f.refreshRate }
func (f *fakeBackend) DeviceMinResolution() frame.Resolution { return f.minRes }
func (f *fakeBackend) DeviceMaxResolution() frame.Resolution { return f.maxRes }

func (f *fakeBackend) MissedFramesCount() uint64 { return f.missed }
func (f *fakeBackend) ResetMissedFramesCount()    { f.missed = 0 }

func (f *fakeBackend) HasValidSignal() bool   { return f.validSignal }
func (f *fakeBackend) IsReceivingSignal() bool { return f.receiving }

func (f *fakeBackend) ForceCaptureResolution(r frame.Resolution) error {
	if f.forceErr != nil {
		return f.forceErr
	}
	f.forcedResolution = r
	return nil
}

func (f *fakeBackend) SetInputChannel(uint32) error { return nil }

var _ Backend = (*fakeBackend)(nil)
