package bus

import "github.com/vidcapture/vcs/frame"

// Events bundles the named buses VCS fires events on (spec.md §4.1). It
// replaces the source's global bus singletons: one Events value is
// constructed by app.New and passed by reference to every listener-owning
// component (Design Notes §9).
type Events struct {
	NewProposedVideoMode Bus[frame.VideoMode]
	NewVideoMode         Bus[frame.VideoMode]
	NewCapturedFrame     Bus[*frame.CapturedFrame]
	SignalLost           Bus[struct{}]
	SignalGained         Bus[struct{}]
	InvalidSignal        Bus[struct{}]
	InvalidDevice        Bus[struct{}]
	UnrecoverableError   Bus[struct{}]
	EcoModeEnabled       Bus[struct{}]
	EcoModeDisabled      Bus[struct{}]
}

// New returns a fresh, empty Events value.
func New() *Events {
	return &Events{}
}
