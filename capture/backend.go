package capture

import (
	"sync"

	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/frame"
)

// Backend is the contract a vendor-specific capture implementation
// provides to the core (spec.md §4.2). The core never constructs a Backend
// itself; it is handed one by the caller (an external collaborator, e.g.
// backend/v4l2backend).
//
// Threading model: Backend owns one or more producer threads or native
// callback routines. A producer must attempt to acquire CaptureMutex
// non-blockingly; if the consumer holds it, the incoming frame is dropped
// and the implementation must increment its missed-frame counter rather
// than stall waiting for the lock.
type Backend interface {
	Initialize() error
	Release() error

	// PopCaptureEvent must be called while CaptureMutex is held. It returns
	// the highest-priority pending event, or EventNone/EventSleep if
	// nothing of higher priority is pending.
	PopCaptureEvent() capevent.Event

	// FrameBuffer is valid only while CaptureMutex is held and only
	// immediately after PopCaptureEvent returned EventNewFrame.
	FrameBuffer() *frame.CapturedFrame

	// MarkFrameBufferAsProcessed signals that the caller is done reading
	// FrameBuffer; the backend may overwrite it after this call returns.
	MarkFrameBufferAsProcessed()

	// CaptureMutex returns the lock coordinating the backend's producer(s)
	// and the coordinator's consumer loop.
	CaptureMutex() *sync.Mutex

	CaptureResolution() frame.Resolution
	CaptureRefreshRate() uint32
	DeviceMinResolution() frame.Resolution
	DeviceMaxResolution() frame.Resolution

	MissedFramesCount() uint64
	ResetMissedFramesCount()

	HasValidSignal() bool
	IsReceivingSignal() bool

	ForceCaptureResolution(frame.Resolution) error
	SetInputChannel(uint32) error
}
