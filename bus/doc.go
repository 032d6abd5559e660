// Package bus provides the typed publish/subscribe primitive used
// throughout VCS (spec.md §4.1). Each event type gets its own Bus[T];
// Fire invokes subscribers synchronously, in subscription order, on the
// caller's goroutine, and does not recover a listener's panic.
package bus
