// Package videomode implements VCS's video-mode resolver (spec.md §4.4): it
// listens for proposed video modes, applies resolution aliasing, and
// forwards corrected or unaliased proposals to the backend and the
// downstream event bus.
package videomode
