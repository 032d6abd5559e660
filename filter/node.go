package filter

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidcapture/vcs/frame"
)

// Node is one instance of a filter type in a chain: a stable instance id
// (distinct from the type's registry UUID), its parameter values, and the
// private implementation state backing stateful types (spec.md §4.6,
// "FilterNode").
type Node struct {
	ID     uuid.UUID
	TypeID TypeID

	params map[uint32]float64
	specs  map[uint32]ParamSpec
	impl   Impl

	// OnParameterChanged, if set, is invoked after a SetParameter call that
	// was not asked to suppress its change event.
	OnParameterChanged func(id uint32, value float64)
}

// NewNode instantiates a node of the given type with every parameter set
// to its registry default.
func NewNode(typeID TypeID) (*Node, error) {
	info, ok := registry[typeID]
	if !ok {
		return nil, fmt.Errorf("filter: unknown type id %d", typeID)
	}
	n := &Node{
		ID:     uuid.New(),
		TypeID: typeID,
		params: make(map[uint32]float64, len(info.Params)),
		specs:  make(map[uint32]ParamSpec, len(info.Params)),
		impl:   info.New(),
	}
	for _, p := range info.Params {
		n.params[p.ID] = p.Default
		n.specs[p.ID] = p
	}
	return n, nil
}

// TypeUUID returns the registry UUID for the node's type.
func (n *Node) TypeUUID() string {
	return registry[n.TypeID].UUID
}

// Parameter returns the current value of parameter id.
func (n *Node) Parameter(id uint32) (float64, bool) {
	v, ok := n.params[id]
	return v, ok
}

// SetParameter sets parameter id to value, clamped to the parameter's
// declared range, encoded to its declared storage width. Parameter changes
// are idempotent (spec.md §4.6). If suppressEvent is false and
// OnParameterChanged is set, it fires after the value is stored.
func (n *Node) SetParameter(id uint32, value float64, suppressEvent bool) error {
	spec, ok := n.specs[id]
	if !ok {
		return fmt.Errorf("filter: node %s: unknown parameter id %d", n.ID, id)
	}
	v := spec.clamp(value)
	switch spec.Width {
	case WidthI32:
		v = float64(int32(v))
	case WidthU8:
		v = float64(uint8(v))
	}
	n.params[id] = v
	if !suppressEvent && n.OnParameterChanged != nil {
		n.OnParameterChanged(id, v)
	}
	return nil
}

// Apply runs the node's filter implementation in place on pixels.
func (n *Node) Apply(pixels []byte, r frame.Resolution, now time.Time) {
	n.impl.Apply(pixels, r, n.params, now)
}
