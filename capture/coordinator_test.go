package capture

import (
	"testing"

	"github.com/vidcapture/vcs/bus"
	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/frame"
)

func TestProcessNextCaptureEventNewFrame(t *testing.T) {
	be := newFakeBackend()
	be.pushEvent(capevent.EventNewFrame)
	events := bus.New()

	var got *frame.CapturedFrame
	events.NewCapturedFrame.Listen(func(f *frame.CapturedFrame) { got = f })

	coord := NewCoordinator(be, events, nil)
	ev := coord.ProcessNextCaptureEvent()

	if ev != capevent.EventNewFrame {
		t.Fatalf("event = %v, want NewFrame", ev)
	}
	if got != be.buf {
		t.Fatal("expected new_captured_frame to fire with the backend's buffer")
	}
	if be.mu.TryLock() == false {
		t.Fatal("capture mutex should not be held after ProcessNextCaptureEvent returns")
	}
	be.mu.Unlock()
}

func TestProcessNextCaptureEventNoSignalSkipsFire(t *testing.T) {
	be := newFakeBackend()
	be.validSignal = false
	be.pushEvent(capevent.EventNewFrame)
	events := bus.New()

	fired := false
	events.NewCapturedFrame.Listen(func(*frame.CapturedFrame) { fired = true })

	coord := NewCoordinator(be, events, nil)
	coord.ProcessNextCaptureEvent()

	if fired {
		t.Fatal("new_captured_frame should not fire without a valid signal")
	}
}

func TestProcessNextCaptureEventNewVideoMode(t *testing.T) {
	be := newFakeBackend()
	be.resolution = frame.Resolution{Width: 720, Height: 400, BitsPerPixel: 32}
	be.refreshRate = 70086
	be.pushEvent(capevent.EventNewVideoMode)
	events := bus.New()

	var got frame.VideoMode
	events.NewProposedVideoMode.Listen(func(m frame.VideoMode) { got = m })

	coord := NewCoordinator(be, events, nil)
	coord.ProcessNextCaptureEvent()

	if got.Resolution != be.resolution || got.RefreshRateMHz != be.refreshRate {
		t.Fatalf("got %v, want resolution %v rate %d", got, be.resolution, be.refreshRate)
	}
}

func TestProcessNextCaptureEventUnrecoverableSetsExit(t *testing.T) {
	be := newFakeBackend()
	be.pushEvent(capevent.EventUnrecoverableError)
	events := bus.New()

	fired := false
	events.UnrecoverableError.Listen(func(struct{}) { fired = true })

	coord := NewCoordinator(be, events, nil)
	coord.ProcessNextCaptureEvent()

	if !coord.ExitRequested() {
		t.Fatal("expected exit flag to be set")
	}
	if !fired {
		t.Fatal("expected unrecoverable_error to fire")
	}
}

func TestProcessNextCaptureEventSleepReleasesMutex(t *testing.T) {
	be := newFakeBackend()
	be.pushEvent(capevent.EventSleep)
	events := bus.New()

	coord := NewCoordinator(be, events, nil)
	ev := coord.ProcessNextCaptureEvent()
	if ev != capevent.EventSleep {
		t.Fatalf("event = %v, want Sleep", ev)
	}
	if !be.mu.TryLock() {
		t.Fatal("mutex should be released after Sleep branch")
	}
	be.mu.Unlock()
}

func TestListenerCanCallBackIntoBackendWithoutDeadlock(t *testing.T) {
	be := newFakeBackend()
	be.resolution = frame.Resolution{Width: 720, Height: 400, BitsPerPixel: 32}
	be.pushEvent(capevent.EventNewVideoMode)
	events := bus.New()

	events.NewProposedVideoMode.Listen(func(m frame.VideoMode) {
		// Simulate the video-mode resolver forcing a resolution from within
		// the listener: this would deadlock if the coordinator still held
		// the capture mutex while firing.
		if err := be.ForceCaptureResolution(frame.Resolution{Width: 640, Height: 400}); err != nil {
			t.Fatalf("ForceCaptureResolution: %v", err)
		}
	})

	coord := NewCoordinator(be, events, nil)
	coord.ProcessNextCaptureEvent()

	if be.forcedResolution.Width != 640 {
		t.Fatal("expected the listener's forced resolution to take effect")
	}
}
