package tables

// OperandSpec is the packed operand descriptor carried by a Leaf (spec.md
// §4.7): seven fields, read by decoder.resolveOperand without any allocation.
// Type and SizeCode reuse the ISA's own mnemonic letters (G, E, I, J, ...;
// b, w, d, v, z, x, ...) rather than a Go-side renaming, keeping the same
// "use the ISA's own vocabulary" convention the original table headers use.
type OperandSpec struct {
	Type       string
	SizeCode   string
	Flags      uint8
	Access     uint8
	Decorators uint8
	Block      uint8
	// Implicit names a fixed register identity for Type == "imp" specifiers
	// (e.g. "RAX", "RSP", "RFLAGS", "RIP", "MXCSR"); unused otherwise.
	Implicit string
}

// Operand flag bits, packed into OperandSpec.Flags.
const (
	OpFlagIsDefault uint8 = 1 << iota
	OpFlagSignExtendDefault
	OpFlagSignExtendOp1
)

// Operand access bits, packed into OperandSpec.Access — same layout as
// decoder.AccessFlags so decoder.resolveOperand can convert with a plain
// uint8 cast.
const (
	OpAccessRead uint8 = 1 << iota
	OpAccessWrite
	OpAccessCondRead
	OpAccessCondWrite
	OpAccessPrefetch
)

// Operand decorator-eligibility bits, packed into OperandSpec.Decorators.
const (
	OpDecMask uint8 = 1 << iota
	OpDecZeroing
	OpDecBroadcast
	OpDecSAE
	OpDecEmbeddedRounding
)

// Leaf is an instruction descriptor: everything the operand resolver and
// validator need once the walker has matched a concrete instruction form
// (spec.md §4.1 "Leaves reference an instruction descriptor").
type Leaf struct {
	Mnemonic        string
	Attributes      Attributes
	Class           string // decoder.InstructionClass
	Category        string // decoder.Category
	ISASet          string
	ExplicitCount   uint8
	ImplicitCount   uint8
	CPUIDFeature    string
	ValidModes      uint8 // bit 0 = 16-bit, bit 1 = 32-bit, bit 2 = 64-bit
	FlagsTested     uint32
	FlagsModified   uint32
	FlagsSet        uint32
	FlagsCleared    uint32
	FlagsUndefined  uint32
	ExceptionClass  string
	ExceptionType   string
	TupleType       uint8 // decoder.TupleType value
	Operands        [10]OperandSpec
}

// ValidInMode reports whether bit `mode` (0/1/2 for 16/32/64) is set in
// ValidModes. A zero ValidModes means "valid in all modes" — the common
// case, so leaf literals below only set this field when a form is
// mode-restricted.
func (l *Leaf) ValidInMode(bit uint8) bool {
	if l.ValidModes == 0 {
		return true
	}
	return l.ValidModes&(1<<bit) != 0
}

const (
	ModeBit16 uint8 = 1 << 0
	ModeBit32 uint8 = 1 << 1
	ModeBit64 uint8 = 1 << 2
)
