package filter

import (
	"time"

	"github.com/vidcapture/vcs/frame"
)

// Gate is a resolution-matching pseudo-node bounding a chain: InputGate
// carries the capture resolution a chain applies to, OutputGate the
// scaler-target resolution (spec.md §4.6, "FilterChain").
type Gate struct {
	Resolution frame.Resolution
}

// Chain is an ordered list of nodes bracketed by an input and output gate.
type Chain struct {
	Name        string
	InputGate   Gate
	OutputGate  Gate
	Nodes       []*Node
}

// Matches reports whether this chain applies to a frame moving from rIn to
// rOut (spec.md §4.6, "chain.input_gate == R1 and chain.output_gate == R2").
func (c *Chain) Matches(rIn, rOut frame.Resolution) bool {
	return c.InputGate.Resolution == rIn && c.OutputGate.Resolution == rOut
}

// apply runs every node in order, in place.
func (c *Chain) apply(pixels []byte, r frame.Resolution, now time.Time) {
	for _, n := range c.Nodes {
		n.Apply(pixels, r, now)
	}
}

// Graph holds the registered chains and the global filtering enable flag
// (spec.md §4.6, "If filtering is globally disabled, return the frame
// unchanged").
type Graph struct {
	Enabled bool
	chains  []*Chain
}

// NewGraph returns a Graph with filtering enabled and no chains registered.
func NewGraph() *Graph {
	return &Graph{Enabled: true}
}

// AddChain registers c, appending it after any existing chains. Chains are
// matched in registration order (spec.md §4.6).
func (g *Graph) AddChain(c *Chain) {
	g.chains = append(g.chains, c)
}

// Chains returns the registered chains in registration order.
func (g *Graph) Chains() []*Chain {
	return append([]*Chain(nil), g.chains...)
}

// FindChain returns the first registered chain matching rIn -> rOut, or nil.
func (g *Graph) FindChain(rIn, rOut frame.Resolution) *Chain {
	for _, c := range g.chains {
		if c.Matches(rIn, rOut) {
			return c
		}
	}
	return nil
}

// Apply runs the first chain matching rIn -> rOut against pixels, in place,
// and returns pixels unchanged if filtering is disabled or no chain
// matches (spec.md §4.6).
func (g *Graph) Apply(pixels []byte, rIn, rOut frame.Resolution, now time.Time) []byte {
	if !g.Enabled {
		return pixels
	}
	c := g.FindChain(rIn, rOut)
	if c == nil {
		return pixels
	}
	c.apply(pixels, rIn, now)
	return pixels
}
