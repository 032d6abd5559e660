// Package filter implements the image-manipulation filter graph: a static
// registry of filter types, per-instance nodes carrying parameter values,
// and chains selected by an (input resolution, output resolution) gate
// pair (spec.md §4.6).
package filter
