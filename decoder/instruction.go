package decoder

import "github.com/keurnel/decoder/decoder/tables"

// MaxInstructionLength is the hardware-enforced cap on encoded instruction
// length (spec.md §3.4 invariant, Glossary). No fetch may push Length past
// this value.
const MaxInstructionLength = 15

// MaxOperands bounds the explicit+implicit operand list (spec.md §3.1
// "Operands").
const MaxOperands = 10

// Instruction is the decoded instruction record (spec.md §3.1): a single
// heap-free value type sized to hold the worst-case encoding. The caller
// owns it; DecodeWithContext zeroes it on entry, and it is fully populated
// on success. On failure it is left
// in an indeterminate but bounded state and must not be consumed.
type Instruction struct {
	// Raw bytes.
	Bytes  [MaxInstructionLength]byte
	Length uint8

	// Mode.
	DefCode  Mode
	DefData  Mode
	DefStack Mode
	Vendor   Vendor
	Features Feature

	// Encoding family.
	Encoding EncodingFamily
	VexForm  VexForm

	// Prefix presence bits.
	HasLock        bool
	HasRepRepzXrelease bool // F3: REP/REPE/REPZ, or XRELEASE
	HasRepnzXacquire   bool // F2: REPNE/REPNZ, or XACQUIRE
	HasOpSize      bool
	HasAddrSize    bool
	HasSeg         bool
	Seg            byte // the prefix byte of the chosen segment override
	HasBranchHint  bool
	BranchHint     byte // prefixSegCS (not-taken) or prefixSegDS (taken)
	HasRex         bool
	RexByte        byte
	HasMandatory66 bool
	HasMandatoryF2 bool
	HasMandatoryF3 bool

	// Extension record (§3.1).
	Exs ExtensionRecord

	// Opcode bytes.
	OpcodeBytes  [3]byte
	OpcodeCount  uint8
	OpcodeOffset uint8
	PrimaryOpcode byte

	// ModR/M.
	HasModRM    bool
	ModRM       byte
	ModRMOffset uint8

	// SIB.
	HasSIB bool
	SIB    byte

	// Displacement.
	HasDisp     bool
	DispLength  uint8
	DispOffset  uint8
	Disp        int32
	SignDisp    bool
	HasCompDisp bool
	CompDispSize uint8

	// Immediates.
	ImmCount       uint8
	ImmValue       [3]uint64
	ImmLength      [3]uint8
	ImmOffset      [3]uint8
	HasSSEImm      bool
	SSEImm         byte
	SSEImmOffset   uint8

	// Absolute far-pointer.
	HasFarPointer bool
	FarOffset     uint64
	FarSegment    uint16

	// Memory offset (moffset).
	HasMoffset  bool
	Moffset     uint64
	MoffsetSize uint8

	// Relative offset.
	HasRelOffset  bool
	RelOffset     int64
	RelOffsetSize uint8
	IsRipRelative bool

	// Classification.
	Class          InstructionClass
	Mnemonic       string
	Category       Category
	ISASet         ISASet
	ExceptionClass ExceptionClass
	ExceptionType  string
	TupleType      TupleType
	FPUFlags       FPUFlagsAccess
	CPUIDFeature   CPUIDFeature

	// Effective modes.
	EffOpSize     Mode
	EffAddrSize   Mode
	EffVectorLen  uint8 // bytes: 16, 32 or 64; 0 for legacy encodings
	WordLength    uint8 // default operand size in bytes, capped at 8

	// Flag access.
	Flags FlagAccess

	// Aggregate access fields, folded from the resolved operands by land();
	// the per-register-class arrays are built separately by GetFullAccessMap.
	AccessMemory FlagsAccessKind
	AccessStack  FlagsAccessKind
	AccessRIP    FlagsAccessKind
	AccessFlagsReg FlagsAccessKind

	// Operands.
	Operands         [MaxOperands]Operand
	OperandCount     uint8
	ExplicitCount    uint8
	ImplicitCount    uint8
	OperandSlotMask  SlotMask

	// Decorator flags (mirrors the winning operand's Decorators for
	// instruction-level convenience lookups).
	HasMask             bool
	HasZeroing          bool
	HasBroadcast        bool
	HasSAE              bool
	HasEmbeddedRounding bool
	RoundingMode        uint8
	Attributes          Attributes
}

// FlagsAccessKind is a read/write/none summary used for the record's
// aggregate memory/stack/RIP/flags access fields (spec.md §3.1 "Access
// maps"): coarser than the per-operand AccessFlags bitmap, it only answers
// "did this instruction touch this resource at all, and how".
type FlagsAccessKind uint8

const (
	AccessKindNone FlagsAccessKind = iota
	AccessKindRead
	AccessKindWrite
	AccessKindReadWrite
)

func (k FlagsAccessKind) merge(a AccessFlags) FlagsAccessKind {
	read := k == AccessKindRead || k == AccessKindReadWrite || a.IsRead()
	write := k == AccessKindWrite || k == AccessKindReadWrite || a.IsWrite()
	switch {
	case read && write:
		return AccessKindReadWrite
	case write:
		return AccessKindWrite
	case read:
		return AccessKindRead
	default:
		return AccessKindNone
	}
}

// Attributes is a bitset of leaf-level instruction attributes consumed by
// the table walker, mode resolver and validator (spec.md §4.1, §4.5, §4.8).
// It is an alias of tables.Attributes: the encoding tables package owns the
// bit layout (its Leaf literals are the only place the constants are set),
// and the decoder core only ever reads them back.
type Attributes = tables.Attributes

const (
	AttrModRM                  = tables.AttrModRM
	AttrModRMForceReg          = tables.AttrModRMForceReg
	AttrInvalid64              = tables.AttrInvalid64
	AttrOnly64                 = tables.AttrOnly64
	AttrDefault64              = tables.AttrDefault64
	AttrForce64                = tables.AttrForce64
	AttrIgnore67               = tables.AttrIgnore67
	AttrIgnoreL                = tables.AttrIgnoreL
	AttrS66                    = tables.AttrS66
	AttrNo66                   = tables.AttrNo66
	AttrLockable               = tables.AttrLockable
	AttrVVVVMustBeZero         = tables.AttrVVVVMustBeZero
	AttrNoL0                   = tables.AttrNoL0
	AttrMandatoryMask          = tables.AttrMandatoryMask
	AttrSupportsZeroing        = tables.AttrSupportsZeroing
	AttrSupportsBroadcast      = tables.AttrSupportsBroadcast
	AttrSupportsSAEER          = tables.AttrSupportsSAEER
	AttrIgnoreEmbeddedRounding = tables.AttrIgnoreEmbeddedRounding
	Attr3DNow                  = tables.Attr3DNow
	AttrIsGatherScatter        = tables.AttrIsGatherScatter
	AttrIsScatter              = tables.AttrIsScatter
	AttrIsAMXE4                = tables.AttrIsAMXE4
	AttrNoRepPrefix            = tables.AttrNoRepPrefix
)
