// Package antitear reconstructs temporally torn capture frames into whole
// images (spec.md §4.5). It supports a one-tear-per-frame strategy
// (bisection search) and a multiple-tears-per-frame strategy (linear scan
// with one level of recursion), sharing a row-change predicate that slides
// an averaging window across each candidate row.
package antitear
