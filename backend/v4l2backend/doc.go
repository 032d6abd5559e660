// Package v4l2backend is a reference capture.Backend implementation for
// Linux Video4Linux2 devices (spec.md §4.2's "vendor-specific capture
// implementation" collaborator). It adapts go4vl's device package — a
// channel-based, mmap-backed V4L2 wrapper — into the core's poll-driven
// PopCaptureEvent/FrameBuffer model, converting whatever pixel format the
// hardware produces into the 32-bit BGRA the core requires (spec.md §3).
//
// This package only builds on linux, since the underlying v4l2 package
// requires the kernel's videodev2.h headers via cgo.
package v4l2backend
