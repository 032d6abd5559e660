// Package mainloop drives the capture coordinator in a loop, runs
// registered periodic timers, and optionally sleeps adaptively between
// iterations to keep CPU usage low without hurting responsiveness
// (spec.md §4.7).
package mainloop
