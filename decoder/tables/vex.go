package tables

// Vex is the VEX root table (spec.md §4.1): indexed first by the 5-bit map
// selector (`m`), then the opcode byte, then the mandatory-prefix selector
// (`pp`, carried in the extension record's P field — see decoder's pp-to-
// MandatoryPrefix mapping, since the wire encoding is 0=none,1=66,2=F3,3=F2,
// not the natural enum order). Map 1 is the classic "0F" map every legacy
// two-byte opcode also lives under; VEX/EVEX reuse it for the vector forms.
var Vex = vexMapNode(map[uint8]*Node{
	1: vexMap1,
})

var vexMap1 = opcodeNode(map[byte]*Node{
	0x10: vexPPNode(
		leafNode(vmovups), // pp none
		leafNode(vmovupd), // pp 66
		leafNode(vmovsd),  // pp F2 (wire pp==3)
		leafNode(vmovss),  // pp F3 (wire pp==2)
	),
})

var vmovups = Leaf{
	Mnemonic:      "VMOVUPS",
	Attributes:    AttrModRM,
	Class:         "VMOVUPS",
	Category:      "AVX",
	ISASet:        "AVX",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "x", Access: OpAccessWrite},
		{Type: "W", SizeCode: "x", Access: OpAccessRead},
	},
}

var vmovupd = Leaf{
	Mnemonic:      "VMOVUPD",
	Attributes:    AttrModRM,
	Class:         "VMOVUPD",
	Category:      "AVX",
	ISASet:        "AVX",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "x", Access: OpAccessWrite},
		{Type: "W", SizeCode: "x", Access: OpAccessRead},
	},
}

var vmovss = Leaf{
	Mnemonic:      "VMOVSS",
	Attributes:    AttrModRM,
	Class:         "VMOVSS",
	Category:      "AVX",
	ISASet:        "AVX",
	ExplicitCount: 3,
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "dq", Access: OpAccessWrite},
		{Type: "H", SizeCode: "dq", Access: OpAccessRead, Flags: OpFlagIsDefault},
		{Type: "W", SizeCode: "d", Access: OpAccessRead},
	},
}

// vmovsd is the VMOVSD xmm, [xmm/m64] form (spec.md §8 scenario "C5 FB 10 05
// 00 00 00 00" — VEX2, pp=F2 wire value 3, ModR/M mod=0 rm=5: RIP-relative).
// The memory form carries only two operands (destination, source); the
// three-operand register-register form (with an NDS source) is a distinct
// leaf the walker would reach via a ModR/M.mod==3 split that this
// representative table omits for brevity.
var vmovsd = Leaf{
	Mnemonic:      "VMOVSD",
	Attributes:    AttrModRM,
	Class:         "VMOVSD",
	Category:      "AVX",
	ISASet:        "AVX",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "V", SizeCode: "dq", Access: OpAccessWrite},
		{Type: "W", SizeCode: "q", Access: OpAccessRead},
	},
}
