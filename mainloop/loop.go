package mainloop

import (
	"time"

	"github.com/vidcapture/vcs/capevent"
	"github.com/vidcapture/vcs/capture"
)

// fixedNoSignalSleep is the sleep taken whenever the backend reports no
// signal, regardless of the adaptive target (spec.md §4.7).
const fixedNoSignalSleep = 10 * time.Millisecond

// ecoSleepCap is the adaptive sleep's upper bound (spec.md §4.7, "sleep for
// min(10 ms, target)").
const ecoSleepCap = 10 * time.Millisecond

// ecoLowPassAlpha is the low-pass filter coefficient applied to the sleep
// target on each update (spec.md §4.7).
const ecoLowPassAlpha = 0.01

// ecoTargetRatio is the fraction of the measured inter-event gap the
// target is pulled toward (spec.md §4.7, "0.85 * elapsed").
const ecoTargetRatio = 0.85

// ecoDropPenalty divides the running target when frames were dropped
// during the interval being measured (spec.md §4.7).
const ecoDropPenalty = 1.5

// timer is one periodic callback registered with a Loop.
type timer struct {
	interval time.Duration
	last     time.Time
	fn       func()
}

// Loop drives the capture coordinator: pop one event, run due timers, let
// the caller's present layer spin once, and optionally sleep adaptively
// (spec.md §4.7).
type Loop struct {
	Coordinator *capture.Coordinator
	EcoMode     bool

	// Sleep and Now are overridable for deterministic tests; they default
	// to time.Sleep and time.Now.
	Sleep func(time.Duration)
	Now   func() time.Time

	target            time.Duration
	haveLastEventTime bool
	lastEventTime     time.Time
	lastMissed        uint64

	timers []*timer
}

// New returns a Loop driving coord, with eco mode off and the adaptive
// target seeded at the sleep cap.
func New(coord *capture.Coordinator) *Loop {
	return &Loop{
		Coordinator: coord,
		Sleep:       time.Sleep,
		Now:         time.Now,
		target:      ecoSleepCap,
	}
}

// AddTimer registers fn to run no more often than once per interval,
// checked on every RunOnce call (spec.md §4.7, "update any registered
// periodic timers").
func (l *Loop) AddTimer(interval time.Duration, fn func()) {
	l.timers = append(l.timers, &timer{interval: interval, last: l.now(), fn: fn})
}

func (l *Loop) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Loop) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if l.Sleep != nil {
		l.Sleep(d)
		return
	}
	time.Sleep(d)
}

// RunOnce executes one iteration of the main loop body: pop a capture
// event, run due timers, let the present layer spin once via presentTick
// (may be nil), and sleep adaptively if eco mode is on (spec.md §4.7).
func (l *Loop) RunOnce(presentTick func()) capevent.Event {
	ev := l.Coordinator.ProcessNextCaptureEvent()
	l.runTimers()
	if presentTick != nil {
		presentTick()
	}
	if l.EcoMode {
		l.ecoSleep(ev)
	}
	return ev
}

func (l *Loop) runTimers() {
	now := l.now()
	for _, t := range l.timers {
		if now.Sub(t.last) >= t.interval {
			t.last = now
			t.fn()
		}
	}
}

// ecoSleep implements the eco scheduler (spec.md §4.7). Sleep and None are
// not "event-carrying" calls and do not advance the measurement.
func (l *Loop) ecoSleep(ev capevent.Event) {
	if ev == capevent.EventSleep || ev == capevent.EventNone {
		return
	}

	now := l.now()
	missed := l.Coordinator.Backend.MissedFramesCount()

	if !l.haveLastEventTime {
		l.haveLastEventTime = true
		l.lastEventTime = now
		l.lastMissed = missed
		return
	}

	elapsed := now.Sub(l.lastEventTime)
	dropped := missed != l.lastMissed
	l.lastEventTime = now
	l.lastMissed = missed

	if !l.Coordinator.Backend.IsReceivingSignal() {
		l.sleep(fixedNoSignalSleep)
		return
	}

	baselineMs := msOf(l.target)
	if dropped {
		baselineMs /= ecoDropPenalty
	}
	elapsedMs := msOf(elapsed)
	targetMs := lerp(baselineMs, ecoTargetRatio*elapsedMs, ecoLowPassAlpha)
	if targetMs < 0 {
		targetMs = 0
	}
	l.target = durationOfMs(targetMs)

	if dropped {
		// A dropped frame means the pipeline is behind; skip the sleep
		// this interval to recover latency rather than add to it.
		return
	}

	sleepFor := l.target
	if sleepFor > ecoSleepCap {
		sleepFor = ecoSleepCap
	}
	l.sleep(sleepFor)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func msOf(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func durationOfMs(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
