// Package scaler specifies and provides a default implementation of the
// component that consumes a post-filter frame and resizes it to the
// presentation/recording target resolution. It sits just outside the core
// proper (spec.md §2, "Scaler integration point"); only its interface is
// mandated, and a bilinear default is provided so the rest of the pipeline
// has something concrete to drive in tests.
package scaler
