package videomode

import (
	"log/slog"

	"github.com/vidcapture/vcs/alias"
	"github.com/vidcapture/vcs/bus"
	"github.com/vidcapture/vcs/capture"
	"github.com/vidcapture/vcs/frame"
)

// Resolver listens for proposed video modes and applies resolution
// aliasing before forwarding a mode to the rest of the system (spec.md
// §4.4).
//
// Alias round-tripping: after Resolver forces an alias's target resolution,
// the backend is expected to re-emit NewProposedVideoMode for that target.
// Resolver tracks the forced target and, on seeing a matching proposal,
// forwards it directly as new_video_mode without consulting the alias table
// again - this prevents an alias whose target also happens to be an alias
// source from ping-ponging forever (a case the spec doesn't spell out but
// original_source's alias.cpp guards against; see SPEC_FULL.md §11).
type Resolver struct {
	Aliases *alias.Table
	Backend capture.Backend
	Events  *bus.Events
	Logger  *slog.Logger

	forcing    bool
	lastForced frame.Resolution
}

// New constructs a Resolver and subscribes it to Events.NewProposedVideoMode.
func New(aliases *alias.Table, backend capture.Backend, events *bus.Events, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{Aliases: aliases, Backend: backend, Events: events, Logger: logger}
	events.NewProposedVideoMode.Listen(r.handleProposal)
	return r
}

func (r *Resolver) handleProposal(m frame.VideoMode) {
	if r.forcing && m.Resolution == r.lastForced {
		r.forcing = false
		r.Events.NewVideoMode.Fire(m)
		return
	}

	to, ok := r.Aliases.Lookup(m.Resolution)
	if !ok {
		r.Events.NewVideoMode.Fire(m)
		return
	}

	if !to.WithinBounds(r.Backend.DeviceMinResolution(), r.Backend.DeviceMaxResolution()) {
		r.Logger.Debug("video-mode resolver: alias target outside device bounds, dropping",
			"from", m.Resolution, "to", to)
		return
	}
	if !r.Backend.IsReceivingSignal() {
		r.Logger.Debug("video-mode resolver: backend not receiving signal, dropping alias force",
			"from", m.Resolution, "to", to)
		return
	}

	if err := r.Backend.ForceCaptureResolution(to); err != nil {
		r.Logger.Debug("video-mode resolver: force_capture_resolution failed, dropping",
			"from", m.Resolution, "to", to, "error", err)
		return
	}

	r.forcing = true
	r.lastForced = to
}
