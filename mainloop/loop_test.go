package mainloop

import (
	"sync"
	"testing"
	"time"

	"github.com/vidcapture/vcs/bus"
	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/capture"
	"github.com/vidcapture/vcs/frame"
)

// fakeBackend drives the loop with a scripted sequence of events and a
// controllable missed-frame counter, without any real hardware.
type fakeBackend struct {
	mu          sync.Mutex
	queue       []capevent.Event
	buf         *frame.CapturedFrame
	receiving   bool
	validSignal bool
	missed      uint64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{buf: frame.NewCapturedFrame(), receiving: true, validSignal: true}
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
func (f *fakeBackend) push(e capevent.Event)             { f.queue = append(f.queue, e) }
func (f *fakeBackend) FrameBuffer() *frame.CapturedFrame { return f.buf }
func (f *fakeBackend) MarkFrameBufferAsProcessed()       {}
func (f *fakeBackend) CaptureMutex() *sync.Mutex         { return &f.mu }
func (f *fakeBackend) CaptureResolution() frame.Resolution  { return frame.Resolution{} }
func (f *fakeBackend) CaptureRefreshRate() uint32            { return 0 }
func (f *fakeBackend) DeviceMinResolution() frame.Resolution { return frame.Resolution{} }
func (f *fakeBackend) DeviceMaxResolution() frame.Resolution { return frame.Resolution{} }
func (f *fakeBackend) MissedFramesCount() uint64             { return f.missed }
func (f *fakeBackend) ResetMissedFramesCount()               { f.missed = 0 }
func (f *fakeBackend) HasValidSignal() bool                  { return f.validSignal }
func (f *fakeBackend) IsReceivingSignal() bool                { return f.receiving }
func (f *fakeBackend) ForceCaptureResolution(frame.Resolution) error { return nil }
func (f *fakeBackend) SetInputChannel(uint32) error                  { return nil }

var _ capture.Backend = (*fakeBackend)(nil)

// fakeClock lets tests advance time deterministically and records every
// requested sleep instead of actually blocking.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

// Sleep records the requested duration without advancing now: in these
// tests the caller already advances the clock by the simulated
// inter-arrival gap, which the sleep occupies rather than extends.
func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLoop(be *fakeBackend, clock *fakeClock) *Loop {
	events := bus.New()
	coord := capture.NewCoordinator(be, events, nil)
	l := New(coord)
	l.EcoMode = true
	l.Now = clock.Now
	l.Sleep = clock.Sleep
	return l
}

// TestEcoSchedulerConvergesTowardInterArrivalGap covers spec.md §8 scenario
// 6: with a steady capture cadence and no dropped frames, the adaptive
// sleep target settles toward 0.85 of the measured inter-arrival gap,
// capped at 10ms.
func TestEcoSchedulerConvergesTowardInterArrivalGap(t *testing.T) {
	be := newFakeBackend()
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLoop(be, clock)

	const gap = 4 * time.Millisecond
	for i := 0; i < 1500; i++ {
		be.push(capevent.EventNewFrame)
		clock.advance(gap)
		l.RunOnce(nil)
	}

	wantMs := 0.85 * msOf(gap)
	gotMs := msOf(l.target)
	diff := gotMs - wantMs
	if diff < 0 {
		diff = -diff
	}
	if diff > 0.1 {
		t.Fatalf("expected target to converge near %.3fms, got %.3fms", wantMs, gotMs)
	}
}

func TestEcoSchedulerSkipsSleepWhenFramesDropped(t *testing.T) {
	be := newFakeBackend()
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLoop(be, clock)

	be.push(capevent.EventNewFrame)
	clock.advance(4 * time.Millisecond)
	l.RunOnce(nil)

	sleepsBefore := len(clock.sleeps)
	be.missed++
	be.push(capevent.EventNewFrame)
	clock.advance(4 * time.Millisecond)
	l.RunOnce(nil)

	if len(clock.sleeps) != sleepsBefore {
		t.Fatal("expected no sleep to be taken on an interval with a dropped frame")
	}
}

func TestEcoSchedulerFixedSleepWhenNoSignal(t *testing.T) {
	be := newFakeBackend()
	be.receiving = false
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLoop(be, clock)

	be.push(capevent.EventNewFrame)
	clock.advance(4 * time.Millisecond)
	l.RunOnce(nil)
	be.push(capevent.EventNewFrame)
	clock.advance(4 * time.Millisecond)
	l.RunOnce(nil)

	if len(clock.sleeps) == 0 || clock.sleeps[len(clock.sleeps)-1] != fixedNoSignalSleep {
		t.Fatalf("expected a fixed %v sleep when not receiving a signal, got %v", fixedNoSignalSleep, clock.sleeps)
	}
}

func TestTimerRunsOnceIntervalElapses(t *testing.T) {
	be := newFakeBackend()
	clock := &fakeClock{now: time.Unix(0, 0)}
	l := newTestLoop(be, clock)
	l.EcoMode = false

	var fired int
	l.AddTimer(10*time.Millisecond, func() { fired++ })

	be.push(capevent.EventNone)
	l.RunOnce(nil)
	if fired != 0 {
		t.Fatal("expected timer not to fire before its interval elapses")
	}

	clock.advance(11 * time.Millisecond)
	be.push(capevent.EventNone)
	l.RunOnce(nil)
	if fired != 1 {
		t.Fatalf("expected timer to fire once after its interval elapses, fired=%d", fired)
	}
}
