package tables

// Root bundles the four root tables spec.md §4.1 calls for, keyed by the
// encoding family the prefix resolver already determined. decoder.walk
// picks one of these once and descends without branching back to a
// different family.
type Root struct {
	Legacy *Node
	Xop    *Node
	Vex    *Node
	Evex   *Node
}

// Forest is the single package-level instance the decoder imports; it is
// built once at init time from the per-family tables in legacy.go, xop.go,
// vex.go and evex.go and never mutated afterward (spec.md §5 "no shared
// mutable state").
var Forest = Root{
	Legacy: Legacy,
	Xop:    Xop,
	Vex:    Vex,
	Evex:   Evex,
}
