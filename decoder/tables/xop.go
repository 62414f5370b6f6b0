package tables

// Xop is the AMD XOP root table. XOP only ever uses maps 8, 9 and 10
// (spec.md §4.1); this representative table populates map 9, the "simple"
// XOP map most XOP instructions without an immediate-selected sub-opcode
// live under.
var Xop = vexMapNode(map[uint8]*Node{
	9: xopMap9,
})

var xopMap9 = opcodeNode(map[byte]*Node{
	0x01: modrmRegNode(map[uint8]*Node{
		1: leafNode(vfrczps), // group-9 sub-opcode selected by ModR/M.reg
	}),
})

// vfrczps models VFRCZPS xmm, xmm/m128 (AMD XOP), a two-operand single-
// source rounding instruction grounded in the XOP map-9 family bddisasm's
// table_xop.h groups under opcode 0x01.
var vfrczps = Leaf{
	Mnemonic:      "VFRCZPS",
	Attributes:    AttrModRM | AttrVVVVMustBeZero,
	Class:         "VFRCZPS",
	Category:      "AVX",
	ISASet:        "XOP",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "x", Access: OpAccessWrite},
		{Type: "W", SizeCode: "x", Access: OpAccessRead},
	},
}
