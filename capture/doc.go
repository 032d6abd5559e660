// Package capture defines the capture backend contract (spec.md §4.2) and
// the coordinator that drains it once per main-loop iteration (spec.md
// §4.3): popping one event under the backend's mutex and dispatching it to
// the event bus. Dropped frames are counted by the Backend itself
// (MissedFramesCount); the coordinator does not read that counter.
package capture
