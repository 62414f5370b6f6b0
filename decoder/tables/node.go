// Package tables holds the encoding decision forest: the static, read-only
// data the table walker traverses to turn a prefix-resolved byte stream into
// an instruction descriptor (spec.md §4.1). It is produced once, here, as Go
// source rather than by an offline generator — the generator's output is
// exactly this shape of data, a tagged-node ADT baked as literals instead of
// emitted as a web of C pointers (spec.md §9 "Massive file of pointer
// tables").
//
// The walker (decoder.walk) is the only consumer; it never does anything
// with a Node beyond reading its Tag and indexing Children/Leaf.
package tables

// Tag discriminates a Node's selector function (spec.md §4.1 table).
type Tag int

const (
	// TagLeaf marks a terminal node: Leaf is valid, Children is empty.
	TagLeaf Tag = iota
	// TagOpcode selects on the next opcode byte (256-way).
	TagOpcode
	// TagOpcode3DNow selects on the opcode byte that follows ModR/M and
	// displacement in the 3DNow! encoding (256-way).
	TagOpcode3DNow
	// TagModRMMod selects on ModR/M.mod collapsed to {memory, register} (2-way).
	TagModRMMod
	// TagModRMReg selects on ModR/M.reg (8-way).
	TagModRMReg
	// TagModRMRM selects on ModR/M.rm (8-way).
	TagModRMRM
	// TagMandatoryPrefix selects on {none, 66, F2, F3} (4-way).
	TagMandatoryPrefix
	// TagMode selects on effective code mode {16, 32, 64, none}.
	TagMode
	// TagDataSize selects on {16, 32, 64, none, default-64, force-64}.
	TagDataSize
	// TagAddressSize selects on {16, 32, 64, none}.
	TagAddressSize
	// TagAuxiliary selects on {REX.B, REX.W, code-64, F3-prefix, any-REP, none}.
	TagAuxiliary
	// TagVendor selects on known vendor with an "any" fallback.
	TagVendor
	// TagFeature selects on a feature flag with a "none" fallback.
	TagFeature
	// TagVexMap selects on the 5-bit VEX/XOP/EVEX map field (`m`).
	TagVexMap
	// TagVexPP selects on the 2-bit VEX/XOP `pp` field.
	TagVexPP
	// TagVexL selects on the effective vector length computed before the
	// walk from the L bits (2 bits). The EVEX SAE/embedded-rounding override
	// depends on leaf attributes and is not applied at this node.
	TagVexL
	// TagVexW selects on the 1-bit `W` field.
	TagVexW
)

// MandatoryPrefix indexes the 4-way TagMandatoryPrefix selector.
type MandatoryPrefix int

const (
	MPNone MandatoryPrefix = iota
	MP66
	MPF2
	MPF3
)

// Auxiliary indexes the 6-way TagAuxiliary selector.
type Auxiliary int

const (
	AuxNone Auxiliary = iota
	AuxRexB
	AuxRexW
	AuxCode64
	AuxF3Prefix
	AuxAnyRep
)

// Node is one interior or terminal point in the decision forest. Exactly one
// of Children or Leaf is meaningful, selected by Tag: TagLeaf nodes carry
// Leaf, every other tag carries Children indexed by that tag's selector.
// Children[i] == nil means "no child at i"; the walker falls back to a
// node's Default slot (index -1 conceptually, stored separately) when one
// exists, else fails with invalid encoding (spec.md §4.2).
type Node struct {
	Tag      Tag
	Children []*Node
	Default  *Node
	Leaf     *Leaf
}

// Child returns the node at index i, or the Default fallback if absent.
func (n *Node) Child(i int) *Node {
	if i >= 0 && i < len(n.Children) && n.Children[i] != nil {
		return n.Children[i]
	}
	return n.Default
}

// leafNode is a small constructor used throughout the table files to keep
// the instruction data itself (legacy.go, vex.go, xop.go, evex.go) free of
// repeated &Node{Tag: TagLeaf, Leaf: &l} boilerplate.
func leafNode(l Leaf) *Node {
	v := l
	return &Node{Tag: TagLeaf, Leaf: &v}
}

// opcodeNode builds a 256-way TagOpcode node from a sparse map of byte ->
// child; bytes absent from the map have no child.
func opcodeNode(children map[byte]*Node) *Node {
	n := &Node{Tag: TagOpcode, Children: make([]*Node, 256)}
	for b, c := range children {
		n.Children[b] = c
	}
	return n
}

// modrmRegNode builds an 8-way TagModRMReg node from a sparse map.
func modrmRegNode(children map[uint8]*Node) *Node {
	n := &Node{Tag: TagModRMReg, Children: make([]*Node, 8)}
	for i, c := range children {
		n.Children[i] = c
	}
	return n
}

// modrmModNode builds the 2-way TagModRMMod node: index 0 is memory form
// (ModR/M.mod != 3), index 1 is register form (ModR/M.mod == 3).
func modrmModNode(mem, reg *Node) *Node {
	return &Node{Tag: TagModRMMod, Children: []*Node{mem, reg}}
}

// mandatoryPrefixNode builds the 4-way TagMandatoryPrefix node.
func mandatoryPrefixNode(none, p66, pf2, pf3 *Node) *Node {
	n := &Node{Tag: TagMandatoryPrefix, Children: make([]*Node, 4)}
	n.Children[MPNone] = none
	n.Children[MP66] = p66
	n.Children[MPF2] = pf2
	n.Children[MPF3] = pf3
	return n
}

// vexMapNode builds a sparse 32-way TagVexMap node.
func vexMapNode(children map[uint8]*Node) *Node {
	n := &Node{Tag: TagVexMap, Children: make([]*Node, 32)}
	for i, c := range children {
		n.Children[i] = c
	}
	return n
}

// vexPPNode builds the 4-way TagVexPP node, indexed like MandatoryPrefix.
func vexPPNode(none, p66, pf2, pf3 *Node) *Node {
	n := &Node{Tag: TagVexPP, Children: make([]*Node, 4)}
	n.Children[MPNone] = none
	n.Children[MP66] = p66
	n.Children[MPF2] = pf2
	n.Children[MPF3] = pf3
	return n
}

// vexWNode builds the 2-way TagVexW node.
func vexWNode(w0, w1 *Node) *Node {
	return &Node{Tag: TagVexW, Children: []*Node{w0, w1}}
}

// vexLNode builds the 3-way TagVexL node (128/256/512-bit).
func vexLNode(l0, l1, l2 *Node) *Node {
	return &Node{Tag: TagVexL, Children: []*Node{l0, l1, l2}}
}
