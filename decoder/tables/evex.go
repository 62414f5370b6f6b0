package tables

// Evex is the EVEX root table (spec.md §4.1), shaped like Vex but with
// leaves that additionally carry TupleType and the broadcast/SAE/ER
// decorator-eligibility bits EVEX-only forms need.
var Evex = vexMapNode(map[uint8]*Node{
	1: evexMap1,
})

var evexMap1 = opcodeNode(map[byte]*Node{
	0x58: vexPPNode(
		leafNode(vaddps), // pp none
		leafNode(vaddpd), // pp 66
		nil,
		nil,
	),
})

// vaddps models VADDPS zmm, zmm, zmm/m512/b32 (spec.md §8 scenario "62 F1
// 7C 48 58 C1" — EVEX, effective vector length 512, three register
// operands). Tuple type FV (full vector) governs compressed-displacement
// scaling for its memory form and gates the b32 broadcast decorator.
var vaddps = Leaf{
	Mnemonic:       "VADDPS",
	Attributes:     AttrModRM | AttrSupportsBroadcast | AttrSupportsSAEER,
	Class:          "VADDPS",
	Category:       "AVX512",
	ISASet:         "AVX512F",
	ExplicitCount:  3,
	TupleType:      uint8(tupleFV),
	FlagsModified:  0,
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "fv", Access: OpAccessWrite, Decorators: OpDecMask | OpDecZeroing},
		{Type: "H", SizeCode: "fv", Access: OpAccessRead},
		{Type: "W", SizeCode: "fv", Access: OpAccessRead, Decorators: OpDecBroadcast | OpDecSAE | OpDecEmbeddedRounding},
	},
}

var vaddpd = Leaf{
	Mnemonic:      "VADDPD",
	Attributes:    AttrModRM | AttrSupportsBroadcast | AttrSupportsSAEER,
	Class:         "VADDPD",
	Category:      "AVX512",
	ISASet:        "AVX512F",
	ExplicitCount: 3,
	TupleType:     uint8(tupleFV),
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "fv", Access: OpAccessWrite, Decorators: OpDecMask | OpDecZeroing},
		{Type: "H", SizeCode: "fv", Access: OpAccessRead},
		{Type: "W", SizeCode: "fv", Access: OpAccessRead, Decorators: OpDecBroadcast | OpDecSAE | OpDecEmbeddedRounding},
	},
}

// tupleFV mirrors decoder.TupleFV's numeric value without importing package
// decoder (see attributes.go for why this package never imports decoder).
const tupleFV = 1
