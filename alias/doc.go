// Package alias implements VCS's resolution-aliasing table: a user-defined
// substitution the video-mode resolver applies when the capture device
// misreports a signal's native resolution (spec.md §3, "ResolutionAlias").
package alias
