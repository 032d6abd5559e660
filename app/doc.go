// Package app wires the core's components into one long-lived struct,
// replacing the source implementation's global singletons (spec.md
// Design Notes §9: "App struct instead of singletons"). App owns the event
// bus, the filter graph, the anti-tear engine, the scaler, the capture
// coordinator and video-mode resolver, and the structured logger that the
// coordinator, resolver and anti-tear engine share (the filter graph and
// the scaler take no logger).
package app
