package decoder

import "fmt"

// RegisterClass identifies which architectural register file an operand's
// register index is drawn from (spec.md §3.2 "register" payload).
type RegisterClass int

const (
	RegGPR        RegisterClass = iota // general purpose (al..r15, ax..r15w, eax..r15d, rax..r15)
	RegSegment                         // es, cs, ss, ds, fs, gs
	RegFPU                             // x87 stack registers st(0)..st(7)
	RegMMX                             // mm0..mm7
	RegVector                          // xmm/ymm/zmm, distinguished by Register.Size
	RegControl                         // cr0..cr15
	RegDebug                           // dr0..dr15
	RegTest                            // tr0..tr7 (legacy)
	RegBound                           // bnd0..bnd3 (MPX)
	RegMask                            // k0..k7 (AVX-512 opmask)
	RegTile                            // tmm0..tmm7 (AMX)
	RegSystem                          // gdtr, idtr, ldtr, tr
	RegFlags                           // rflags/eflags/flags
	RegIP                              // rip/eip/ip
	RegMXCSR                           // mxcsr
	RegPKRU                            // pkru
	RegSSP                             // shadow stack pointer
	RegUIF                             // user interrupt flag
)

// Register names a single architectural register: its class, its encoding
// index within that class, its size in bytes, and whether it is one of the
// four legacy high-byte registers (AH/CH/DH/BH) that share an encoding with
// a low-byte register but access bits [15:8] instead of [7:0].
type Register struct {
	Name   string
	Class  RegisterClass
	Index  uint8
	Size   uint16
	High8  bool
}

// General purpose registers - 64-bit.
var (
	RAX = Register{Name: "rax", Class: RegGPR, Index: 0, Size: 8}
	RCX = Register{Name: "rcx", Class: RegGPR, Index: 1, Size: 8}
	RDX = Register{Name: "rdx", Class: RegGPR, Index: 2, Size: 8}
	RBX = Register{Name: "rbx", Class: RegGPR, Index: 3, Size: 8}
	RSP = Register{Name: "rsp", Class: RegGPR, Index: 4, Size: 8}
	RBP = Register{Name: "rbp", Class: RegGPR, Index: 5, Size: 8}
	RSI = Register{Name: "rsi", Class: RegGPR, Index: 6, Size: 8}
	RDI = Register{Name: "rdi", Class: RegGPR, Index: 7, Size: 8}
)

// General purpose registers - 32-bit.
var (
	EAX = Register{Name: "eax", Class: RegGPR, Index: 0, Size: 4}
	ECX = Register{Name: "ecx", Class: RegGPR, Index: 1, Size: 4}
	EDX = Register{Name: "edx", Class: RegGPR, Index: 2, Size: 4}
	EBX = Register{Name: "ebx", Class: RegGPR, Index: 3, Size: 4}
	ESP = Register{Name: "esp", Class: RegGPR, Index: 4, Size: 4}
	EBP = Register{Name: "ebp", Class: RegGPR, Index: 5, Size: 4}
	ESI = Register{Name: "esi", Class: RegGPR, Index: 6, Size: 4}
	EDI = Register{Name: "edi", Class: RegGPR, Index: 7, Size: 4}
)

// General purpose registers - 16-bit.
var (
	AX = Register{Name: "ax", Class: RegGPR, Index: 0, Size: 2}
	CX = Register{Name: "cx", Class: RegGPR, Index: 1, Size: 2}
	DX = Register{Name: "dx", Class: RegGPR, Index: 2, Size: 2}
	BX = Register{Name: "bx", Class: RegGPR, Index: 3, Size: 2}
	SP = Register{Name: "sp", Class: RegGPR, Index: 4, Size: 2}
	BP = Register{Name: "bp", Class: RegGPR, Index: 5, Size: 2}
	SI = Register{Name: "si", Class: RegGPR, Index: 6, Size: 2}
	DI = Register{Name: "di", Class: RegGPR, Index: 7, Size: 2}
)

// General purpose registers - 8-bit, low byte.
var (
	AL  = Register{Name: "al", Class: RegGPR, Index: 0, Size: 1}
	CL  = Register{Name: "cl", Class: RegGPR, Index: 1, Size: 1}
	DL  = Register{Name: "dl", Class: RegGPR, Index: 2, Size: 1}
	BL  = Register{Name: "bl", Class: RegGPR, Index: 3, Size: 1}
	SPL = Register{Name: "spl", Class: RegGPR, Index: 4, Size: 1}
	BPL = Register{Name: "bpl", Class: RegGPR, Index: 5, Size: 1}
	SIL = Register{Name: "sil", Class: RegGPR, Index: 6, Size: 1}
	DIL = Register{Name: "dil", Class: RegGPR, Index: 7, Size: 1}
)

// General purpose registers - 8-bit, high byte (legacy, no REX present).
var (
	AH = Register{Name: "ah", Class: RegGPR, Index: 4, Size: 1, High8: true}
	CH = Register{Name: "ch", Class: RegGPR, Index: 5, Size: 1, High8: true}
	DH = Register{Name: "dh", Class: RegGPR, Index: 6, Size: 1, High8: true}
	BH = Register{Name: "bh", Class: RegGPR, Index: 7, Size: 1, High8: true}
)

// Segment registers. Index is the 3-bit segment-register encoding (ES=0 ...
// GS=5); Instruction.Seg holds the override prefix byte instead, which
// effectiveSegment maps onto these values.
var (
	ES = Register{Name: "es", Class: RegSegment, Index: 0, Size: 2}
	CS = Register{Name: "cs", Class: RegSegment, Index: 1, Size: 2}
	SS = Register{Name: "ss", Class: RegSegment, Index: 2, Size: 2}
	DS = Register{Name: "ds", Class: RegSegment, Index: 3, Size: 2}
	FS = Register{Name: "fs", Class: RegSegment, Index: 4, Size: 2}
	GS = Register{Name: "gs", Class: RegSegment, Index: 5, Size: 2}
)

// RIP / flags / system registers that operands reference implicitly.
var (
	RIP    = Register{Name: "rip", Class: RegIP, Size: 8}
	EIP    = Register{Name: "eip", Class: RegIP, Size: 4}
	IP     = Register{Name: "ip", Class: RegIP, Size: 2}
	RFLAGS = Register{Name: "rflags", Class: RegFlags, Size: 8}
	EFLAGS = Register{Name: "eflags", Class: RegFlags, Size: 4}
	FLAGS  = Register{Name: "flags", Class: RegFlags, Size: 2}
	MXCSR  = Register{Name: "mxcsr", Class: RegMXCSR, Size: 4}
	PKRU   = Register{Name: "pkru", Class: RegPKRU, Size: 4}
	SSP    = Register{Name: "ssp", Class: RegSSP, Size: 8}
	GDTR   = Register{Name: "gdtr", Class: RegSystem, Index: 0, Size: 10}
	IDTR   = Register{Name: "idtr", Class: RegSystem, Index: 1, Size: 10}
	LDTR   = Register{Name: "ldtr", Class: RegSystem, Index: 2, Size: 2}
	TR     = Register{Name: "tr", Class: RegSystem, Index: 3, Size: 2}
)

func ctrl(i uint8) Register { return Register{Name: fmt.Sprintf("cr%d", i), Class: RegControl, Index: i, Size: 8} }
func dbg(i uint8) Register  { return Register{Name: fmt.Sprintf("dr%d", i), Class: RegDebug, Index: i, Size: 8} }
func tst(i uint8) Register  { return Register{Name: fmt.Sprintf("tr%d", i), Class: RegTest, Index: i, Size: 4} }
func mmx(i uint8) Register  { return Register{Name: fmt.Sprintf("mm%d", i), Class: RegMMX, Index: i, Size: 8} }
func fpu(i uint8) Register  { return Register{Name: fmt.Sprintf("st%d", i), Class: RegFPU, Index: i, Size: 10} }
func mask(i uint8) Register { return Register{Name: fmt.Sprintf("k%d", i), Class: RegMask, Index: i, Size: 8} }
func bnd(i uint8) Register  { return Register{Name: fmt.Sprintf("bnd%d", i), Class: RegBound, Index: i, Size: 16} }
func tile(i uint8) Register { return Register{Name: fmt.Sprintf("tmm%d", i), Class: RegTile, Index: i, Size: 1024} }

func xmm(i uint8) Register { return Register{Name: fmt.Sprintf("xmm%d", i), Class: RegVector, Index: i, Size: 16} }
func ymm(i uint8) Register { return Register{Name: fmt.Sprintf("ymm%d", i), Class: RegVector, Index: i, Size: 32} }
func zmm(i uint8) Register { return Register{Name: fmt.Sprintf("zmm%d", i), Class: RegVector, Index: i, Size: 64} }

// Extended register files (control/debug/test/MMX/mask/bound/tile, and the
// vector file at every width) are generated rather than hand-enumerated:
// AVX-512 alone defines 32 ZMM registers, and writing out ZMM0..ZMM31 (plus
// their YMM/XMM aliases) as individual var declarations the way the teacher
// hand-wrote RAX..R15 would make this file mostly boilerplate. The values
// are identical to what hand enumeration would produce.
var (
	controlRegisters [16]Register
	debugRegisters   [16]Register
	testRegisters    [8]Register
	mmxRegisters     [8]Register
	fpuRegisters     [8]Register
	maskRegisters    [8]Register
	boundRegisters   [4]Register
	tileRegisters    [8]Register
	xmmRegisters     [32]Register
	ymmRegisters     [32]Register
	zmmRegisters     [32]Register
)

func init() {
	for i := range controlRegisters {
		controlRegisters[i] = ctrl(uint8(i))
	}
	for i := range debugRegisters {
		debugRegisters[i] = dbg(uint8(i))
	}
	for i := range testRegisters {
		testRegisters[i] = tst(uint8(i))
	}
	for i := range mmxRegisters {
		mmxRegisters[i] = mmx(uint8(i))
	}
	for i := range fpuRegisters {
		fpuRegisters[i] = fpu(uint8(i))
	}
	for i := range maskRegisters {
		maskRegisters[i] = mask(uint8(i))
	}
	for i := range boundRegisters {
		boundRegisters[i] = bnd(uint8(i))
	}
	for i := range tileRegisters {
		tileRegisters[i] = tile(uint8(i))
	}
	for i := range xmmRegisters {
		xmmRegisters[i] = xmm(uint8(i))
	}
	for i := range ymmRegisters {
		ymmRegisters[i] = ymm(uint8(i))
	}
	for i := range zmmRegisters {
		zmmRegisters[i] = zmm(uint8(i))
	}
}

// ControlRegister, DebugRegister, ... return the Nth register of their
// class. The index is masked to the class's width, so an out-of-range index
// wraps around instead of panicking.
func ControlRegister(i uint8) Register { return controlRegisters[i&0xF] }
func DebugRegister(i uint8) Register   { return debugRegisters[i&0xF] }
func TestRegister(i uint8) Register    { return testRegisters[i&0x7] }
func MMXRegister(i uint8) Register     { return mmxRegisters[i&0x7] }
func FPURegister(i uint8) Register     { return fpuRegisters[i&0x7] }
func MaskRegister(i uint8) Register    { return maskRegisters[i&0x7] }
func BoundRegister(i uint8) Register   { return boundRegisters[i&0x3] }
func TileRegister(i uint8) Register    { return tileRegisters[i&0x7] }
func XMMRegister(i uint8) Register     { return xmmRegisters[i&0x1F] }
func YMMRegister(i uint8) Register     { return ymmRegisters[i&0x1F] }
func ZMMRegister(i uint8) Register     { return zmmRegisters[i&0x1F] }

// VectorRegister returns the vector register of the given class-relative
// index at the requested operand size (16, 32 or 64 bytes).
func VectorRegister(index uint8, sizeBytes uint8) Register {
	switch sizeBytes {
	case 16:
		return XMMRegister(index)
	case 32:
		return YMMRegister(index)
	case 64:
		return ZMMRegister(index)
	default:
		return XMMRegister(index)
	}
}

// GPRegister returns the general-purpose register with the given encoding
// index at the given size in bytes. rexPresent distinguishes AH/CH/DH/BH
// (no REX, index 4-7, byte size) from SPL/BPL/SIL/DIL (REX present, same
// index range, byte size).
func GPRegister(index uint8, sizeBytes uint8, rexPresent bool) Register {
	table8 := [16]Register{AL, CL, DL, BL, AH, CH, DH, BH}
	table8rex := [16]Register{AL, CL, DL, BL, SPL, BPL, SIL, DIL}
	table16 := [16]Register{AX, CX, DX, BX, SP, BP, SI, DI}
	table32 := [16]Register{EAX, ECX, EDX, EBX, ESP, EBP, ESI, EDI}
	table64 := [16]Register{RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI}

	for i := uint8(8); i < 16; i++ {
		table16[i] = Register{Name: fmt.Sprintf("r%dw", i), Class: RegGPR, Index: i, Size: 2}
		table32[i] = Register{Name: fmt.Sprintf("r%dd", i), Class: RegGPR, Index: i, Size: 4}
		table64[i] = Register{Name: fmt.Sprintf("r%d", i), Class: RegGPR, Index: i, Size: 8}
		table8rex[i] = Register{Name: fmt.Sprintf("r%db", i), Class: RegGPR, Index: i, Size: 1}
		table8[i] = table8rex[i]
	}

	index &= 0xF
	switch sizeBytes {
	case 1:
		if rexPresent || index >= 8 {
			return table8rex[index]
		}
		return table8[index]
	case 2:
		return table16[index]
	case 4:
		return table32[index]
	default:
		return table64[index]
	}
}

// SegmentRegister returns the segment register with the given 3-bit
// encoding index.
func SegmentRegister(index uint8) Register {
	table := [6]Register{ES, CS, SS, DS, FS, GS}
	return table[index&0x7%6]
}
