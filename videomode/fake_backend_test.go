package videomode

import (
	"sync"

	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/frame"
)

type fakeBackend struct {
	mu sync.Mutex

	minRes, maxRes frame.Resolution
	receiving      bool
	forceErr       error
	forced         []frame.Resolution
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		minRes:    frame.Resolution{Width: 320, Height: 240},
		maxRes:    frame.Resolution{Width: 1920, Height: 1080},
		receiving: true,
	}
}

func (f *fakeBackend) Initialize() error                        { return nil }
func (f *fakeBackend) Release() error                            { return nil }
func (f *fakeBackend) PopCaptureEvent() capevent.Event            { return capevent.EventNone }
func (f *fakeBackend) FrameBuffer() *frame.CapturedFrame          { return nil }
func (f *fakeBackend) MarkFrameBufferAsProcessed()                {}
func (f *fakeBackend) CaptureMutex() *sync.Mutex                  { return &f.mu }
func (f *fakeBackend) CaptureResolution() frame.Resolution        { return frame.Resolution{} }
func (f *fakeBackend) CaptureRefreshRate() uint32                 { return 0 }
func (f *fakeBackend) DeviceMinResolution() frame.Resolution      { return f.minRes }
func (f *fakeBackend) DeviceMaxResolution() frame.Resolution      { return f.maxRes }
func (f *fakeBackend) MissedFramesCount() uint64                  { return 0 }
func (f *fakeBackend) ResetMissedFramesCount()                    {}
func (f *fakeBackend) HasValidSignal() bool                       { return true }
func (f *fakeBackend) IsReceivingSignal() bool                    { return f.receiving }

func (f *fakeBackend) ForceCaptureResolution(r frame.Resolution) error {
	if f.forceErr != nil {
		return f.forceErr
	}
	f.forced = append(f.forced, r)
	return nil
}

func (f *fakeBackend) SetInputChannel(uint32) error { return nil }
