package tables

// Legacy is the root of the plain-opcode decision forest (spec.md §4.1,
// "Four root tables: legacy, XOP, VEX, EVEX"). It is deliberately a
// representative slice of the real ISA rather than an exhaustive
// transcription: spec.md §1 itself treats the full tables as an opaque
// build-time artifact with a well-defined traversal contract, so this file
// supplies one complete, self-consistent corner of that contract instead of
// the ~20,000-entry table a real build-time generator would emit. The
// walker (decoder/walker.go) implements every node tag node.go defines;
// this forest exercises the common ones directly.
var Legacy = opcodeNode(map[byte]*Node{
	0x01: addRm64R64,
	0x89: movRm64R64,
	0x8B: movR32Rm32,
	0x8F: popGroup1,
	0x90: leafNode(nop),
	0xB8: leafNode(movR32Imm32), // MOV r32, imm32 (opcode+reg, the +rb/+rd family)
})

var nop = Leaf{
	Mnemonic:      "NOP",
	Class:         "NOP",
	Category:      "DATA_TRANSFER",
	ISASet:        "I86",
	ExplicitCount: 0,
}

// addRm64R64 models ADD r/m64, r64 (opcode 0x01 /r): lockable, destination
// is ModR/M.rm (read+write), source is ModR/M.reg (read). Grounded in
// bddisasm's ADD table row.
var addRm64R64 = leafNode(Leaf{
	Mnemonic:      "ADD",
	Attributes:    AttrModRM | AttrLockable,
	Class:         "ADD",
	Category:      "ARITH",
	ISASet:        "I86",
	ExplicitCount: 2,
	FlagsTested:   0,
	FlagsModified: flagsArith,
	Operands: [10]OperandSpec{
		{Type: "E", SizeCode: "v", Access: OpAccessRead | OpAccessWrite},
		{Type: "G", SizeCode: "v", Access: OpAccessRead},
	},
})

var movRm64R64 = leafNode(Leaf{
	Mnemonic:      "MOV",
	Attributes:    AttrModRM,
	Class:         "MOV",
	Category:      "DATA_TRANSFER",
	ISASet:        "I86",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "E", SizeCode: "v", Access: OpAccessWrite},
		{Type: "G", SizeCode: "v", Access: OpAccessRead},
	},
})

var movR32Rm32 = leafNode(Leaf{
	Mnemonic:      "MOV",
	Attributes:    AttrModRM,
	Class:         "MOV",
	Category:      "DATA_TRANSFER",
	ISASet:        "I86",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "G", SizeCode: "v", Access: OpAccessWrite},
		{Type: "E", SizeCode: "v", Access: OpAccessRead},
	},
})

var movR32Imm32 = Leaf{
	Mnemonic:      "MOV",
	Class:         "MOV",
	Category:      "DATA_TRANSFER",
	ISASet:        "I86",
	ExplicitCount: 2,
	Operands: [10]OperandSpec{
		{Type: "OI", SizeCode: "v", Access: OpAccessWrite},
		{Type: "I", SizeCode: "v", Access: OpAccessRead},
	},
}

// popGroup1 models opcode 0x8F: ModRM.reg must be 0 (POP r/m); any other
// reg value is reserved (#UD) on real hardware, represented here by leaving
// the other seven TagModRMReg children nil so the walker's default-fallback
// rule rejects them (spec.md §4.2). This is also the byte the prefix
// resolver's XOP fetcher shares: in non-64-bit mode with the second byte's
// low 5 bits < 8, XOP fetching bails out and table-walks land here instead
// (spec.md §4.4 step 4, §8 scenario "Non-64-bit mode 8F 08 12").
var popGroup1 = &Node{
	Tag: TagModRMMod,
	Children: []*Node{
		modrmRegNode(map[uint8]*Node{0: leafNode(popRm)}), // memory form
		modrmRegNode(map[uint8]*Node{0: leafNode(popRm)}), // register form
	},
}

var popRm = Leaf{
	Mnemonic:      "POP",
	Attributes:    AttrModRM,
	Class:         "POP",
	Category:      "DATA_TRANSFER",
	ISASet:        "I86",
	ExplicitCount: 1,
	Operands: [10]OperandSpec{
		{Type: "E", SizeCode: "d64", Access: OpAccessWrite},
	},
}

// Flag bitmaps, matching decoder.FlagsMask's bit positions (CF=1<<0 ...
// OF=1<<8) without importing package decoder.
const (
	flagCF uint32 = 1 << iota
	flagPF
	flagAF
	flagZF
	flagSF
	flagTF
	flagIF
	flagDF
	flagOF
)

const flagsArith = flagCF | flagPF | flagAF | flagZF | flagSF | flagOF
