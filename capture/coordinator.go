package capture

import (
	"log/slog"
	"time"

	"github.com/vidcapture/vcs/bus"
	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/frame"
)

// SleepInterval is the fixed pause taken on an EventSleep pop (spec.md §4.3).
const SleepInterval = 4 * time.Millisecond

// Coordinator drains capture events and dispatches them onto the event
// bus, guarding all backend access with the backend's own mutex (spec.md
// §4.3, §5).
type Coordinator struct {
	Backend Backend
	Events  *bus.Events
	Logger  *slog.Logger

	exitRequested bool
}

// NewCoordinator wires a backend to an Events bundle. logger may be nil, in
// which case a discard logger is used.
func NewCoordinator(backend Backend, events *bus.Events, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	return &Coordinator{Backend: backend, Events: events, Logger: logger}
}

// ExitRequested reports whether an UnrecoverableError has been observed.
func (c *Coordinator) ExitRequested() bool {
	return c.exitRequested
}

// ProcessNextCaptureEvent implements the main-loop step of spec.md §4.3: it
// acquires the backend's mutex, pops one event, dispatches it, and returns
// the tag. The mutex is never held across a Fire call except for
// EventNewFrame, whose payload (the backend's frame buffer) is only valid
// while the mutex is held; every other branch releases the mutex first so
// that a listener which calls back into the backend (e.g. the video-mode
// resolver forcing a new capture resolution) cannot deadlock against
// itself.
//
// After this method returns, the caller is guaranteed not to be holding
// the capture mutex.
func (c *Coordinator) ProcessNextCaptureEvent() capevent.Event {
	mu := c.Backend.CaptureMutex()
	mu.Lock()

	ev := c.Backend.PopCaptureEvent()

	switch ev {
	case capevent.EventNewFrame:
		if c.Backend.HasValidSignal() {
			buf := c.Backend.FrameBuffer()
			c.Events.NewCapturedFrame.Fire(buf)
		}
		c.Backend.MarkFrameBufferAsProcessed()
		mu.Unlock()

	case capevent.EventNewVideoMode:
		validSignal := c.Backend.HasValidSignal()
		var mode frame.VideoMode
		if validSignal {
			mode = frame.VideoMode{
				Resolution:     c.Backend.CaptureResolution(),
				RefreshRateMHz: c.Backend.CaptureRefreshRate(),
			}
		}
		mu.Unlock()
		if validSignal {
			c.Events.NewProposedVideoMode.Fire(mode)
		}

	case capevent.EventSignalLost:
		mu.Unlock()
		c.Events.SignalLost.Fire(struct{}{})

	case capevent.EventSignalGained:
		mu.Unlock()
		c.Events.SignalGained.Fire(struct{}{})

	case capevent.EventInvalidSignal:
		mu.Unlock()
		c.Events.InvalidSignal.Fire(struct{}{})

	case capevent.EventInvalidDevice:
		mu.Unlock()
		c.Events.InvalidDevice.Fire(struct{}{})

	case capevent.EventUnrecoverableError:
		c.exitRequested = true
		mu.Unlock()
		c.Logger.Error("capture backend reported an unrecoverable error")
		c.Events.UnrecoverableError.Fire(struct{}{})

	case capevent.EventSleep:
		mu.Unlock()
		time.Sleep(SleepInterval)

	default: // EventNone
		mu.Unlock()
	}

	return ev
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
