package decoder

// OperandKind tags the payload an Operand carries (spec.md §3.2).
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandMemory
	OperandImmediate
	OperandConstant
	OperandRelativeOffset
	OperandFarAddress
	OperandRegisterBank
)

// AccessFlags is a bitmap of how an operand is touched, accumulated from
// both the matched leaf's per-operand access code and any implicit effects
// (spec.md §3.2 "access").
type AccessFlags uint8

const (
	AccessRead AccessFlags = 1 << iota
	AccessWrite
	AccessCondRead
	AccessCondWrite
	AccessPrefetch
)

func (a AccessFlags) IsRead() bool  { return a&(AccessRead|AccessCondRead) != 0 }
func (a AccessFlags) IsWrite() bool { return a&(AccessWrite|AccessCondWrite) != 0 }

// EncodingSlot names where an operand's value is encoded (spec.md §3.2
// "encoding slot").
type EncodingSlot int

const (
	SlotNone EncodingSlot = iota
	SlotModRMReg
	SlotModRMRM
	SlotVexVVVV
	SlotImmediate
	SlotOpcodeByte
	SlotImplicit
	SlotEvexAAA
	SlotDisplacement
	SlotConstant
)

// SlotMask is a bitmap across all of an instruction's operands, one bit per
// EncodingSlot, answering "does any operand use slot X" in O(1).
type SlotMask uint16

func (s SlotMask) has(slot EncodingSlot) bool { return s&(1<<uint(slot)) != 0 }

// OperandFlags carries the handful of boolean decode-time facts about an
// operand that don't fit the kind/size/access/slot fields.
type OperandFlags struct {
	IsDefault             bool // this operand is always present regardless of encoding
	SignExtendedToDefault bool // sign-extended to the default operand size
	SignExtendedToOp1     bool // sign-extended to operand[0]'s size
}

// Decorators carries the EVEX-family per-operand decorations (spec.md §3.2
// "decorator").
type Decorators struct {
	MaskRegister     uint8 // 0 = k0/no mask, else 1..7
	Zeroing          bool
	Broadcast        bool
	BroadcastElement uint8 // element size in bytes when Broadcast is set
	BroadcastCount   uint8 // number of elements when Broadcast is set
	SAE              bool
	EmbeddedRounding bool
	RoundingMode     uint8 // valid when EmbeddedRounding is set
}

// ShadowStackKind enumerates the CET shadow-stack memory operand forms.
type ShadowStackKind int

const (
	ShadowStackNone ShadowStackKind = iota
	ShadowStackSSP
	ShadowStackPL0SSP
	ShadowStackPushPop
)

// MemoryOperand is the payload of an OperandMemory operand (spec.md §3.2
// "memory").
type MemoryOperand struct {
	HasSegment   bool
	Segment      Register
	HasBase      bool
	Base         Register
	HasIndex     bool
	Index        Register
	Scale        uint8 // 1, 2, 4 or 8
	HasDisp      bool
	Disp         int32
	DispSize     uint8
	HasCompDisp  bool
	CompDispSize uint8
	IsRipRel     bool
	IsDirect     bool // absolute (moffset-style) addressing
	IsStack      bool
	IsString     bool
	IsVSIB       bool
	VSIBElemSize uint8
	VSIBCount    uint8
	IsSIBMem     bool
	IsBitbase    bool
	IsAddrGen    bool // LEA-like: segment is ignored for address generation
	IsShadow     bool
	ShadowKind   ShadowStackKind
}

// RegisterOperand is the payload of an OperandRegister operand.
type RegisterOperand struct {
	Reg        Register
	BlockStart uint8 // for multi-register operands (VSIB-adjacent register lists)
	BlockCount uint8
}

// FarAddress is the payload of an OperandFarAddress operand.
type FarAddress struct {
	Segment uint16
	Offset  uint64
}

// RegisterBank records implicit access to a contiguous block of registers
// (spec.md §3.2 "register-bank"), used by string-move-adjacent and
// multi-register SSE save/restore forms.
type RegisterBank struct {
	Class RegisterClass
	Start uint8
	Count uint8
}

// Operand is a single resolved operand (spec.md §3.2). Exactly one of the
// kind-specific payload fields is meaningful, selected by Kind.
type Operand struct {
	Kind     OperandKind
	Size     uint8
	RawSize  uint8 // always equal to Size; broadcast does not change it
	Access   AccessFlags
	Slot     EncodingSlot
	Flags    OperandFlags
	Decorator Decorators

	Register RegisterOperand
	Memory   MemoryOperand
	Imm      uint64
	ImmSigned int64
	RelOffset int64
	Far       FarAddress
	Bank      RegisterBank
}
