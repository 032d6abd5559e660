// Package capevent implements VCS's capture event queue: a fixed-size
// set-of-flags queue with priority pop order and coalescing semantics
// (spec.md §3, "EventQueue").
package capevent
