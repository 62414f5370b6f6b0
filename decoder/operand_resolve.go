package decoder

import "github.com/keurnel/decoder/decoder/tables"

// resolveOperand turns one packed operand specifier from a matched leaf
// into a fully computed Operand (spec.md §4.7). It is called once per
// explicit+implicit operand, in leaf order.
func resolveOperand(s *stream, spec *tables.OperandSpec) (Operand, Status) {
	in := s.instr
	size := resolveSize(spec.SizeCode, in)

	op := Operand{
		Size:    size,
		RawSize: size,
		Access:  AccessFlags(spec.Access),
		Flags: OperandFlags{
			IsDefault:             spec.Flags&tables.OpFlagIsDefault != 0,
			SignExtendedToDefault: spec.Flags&tables.OpFlagSignExtendDefault != 0,
			SignExtendedToOp1:     spec.Flags&tables.OpFlagSignExtendOp1 != 0,
		},
	}

	switch spec.Type {
	case "G":
		op.Kind = OperandRegister
		op.Slot = SlotModRMReg
		idx := regIndex(splitModRM(in.ModRM).Reg, in.Exs.R, in.Exs.Rp)
		op.Register = RegisterOperand{Reg: GPRegister(idx, size, in.HasRex)}

	case "E":
		mrm := splitModRM(in.ModRM)
		if mrm.Mod == 3 {
			op.Kind = OperandRegister
			op.Slot = SlotModRMRM
			idx := regIndex(mrm.RM, in.Exs.B, in.Exs.Bp)
			op.Register = RegisterOperand{Reg: GPRegister(idx, size, in.HasRex)}
		} else {
			op.Kind = OperandMemory
			op.Slot = SlotModRMRM
			op.Memory = buildMemory(in, size)
		}

	case "V":
		op.Kind = OperandRegister
		op.Slot = SlotModRMReg
		idx := regIndex(splitModRM(in.ModRM).Reg, in.Exs.R, in.Exs.Rp)
		op.Register = RegisterOperand{Reg: VectorRegister(idx, size)}
		applyEvexDecorators(in, spec, &op, true)

	case "W":
		mrm := splitModRM(in.ModRM)
		if mrm.Mod == 3 {
			op.Kind = OperandRegister
			op.Slot = SlotModRMRM
			idx := regIndex(mrm.RM, in.Exs.B, in.Exs.Bp)
			op.Register = RegisterOperand{Reg: VectorRegister(idx, size)}
		} else {
			op.Kind = OperandMemory
			op.Slot = SlotModRMRM
			op.Memory = buildMemoryEvex(in, spec, size)
		}
		applyEvexDecorators(in, spec, &op, mrm.Mod == 3)

	case "H":
		op.Kind = OperandRegister
		op.Slot = SlotVexVVVV
		idx := in.Exs.V | (in.Exs.Vp << 4)
		op.Register = RegisterOperand{Reg: VectorRegister(idx, size)}

	case "OI":
		op.Kind = OperandRegister
		op.Slot = SlotOpcodeByte
		idx := regIndex(in.PrimaryOpcode&0x7, in.Exs.B, 0)
		op.Register = RegisterOperand{Reg: GPRegister(idx, size, in.HasRex)}

	case "I":
		v, st := fetchImmediate(s, size)
		if st != StatusSuccess {
			return op, st
		}
		op.Kind = OperandImmediate
		op.Slot = SlotImmediate
		op.Imm = v
		op.ImmSigned = signExtend(v, size)

	case "J":
		v, st := fetchImmediate(s, size)
		if st != StatusSuccess {
			return op, st
		}
		op.Kind = OperandRelativeOffset
		op.Slot = SlotImmediate
		op.RelOffset = signExtend(v, size)
		in.HasRelOffset = true
		in.RelOffset = op.RelOffset
		in.RelOffsetSize = size

	case "A":
		offSize := size
		off, st := fetchImmediate(s, offSize)
		if st != StatusSuccess {
			return op, st
		}
		seg, st := s.fetchData(in.Length, 2)
		if st != StatusSuccess {
			return op, st
		}
		if st := s.grow(2); st != StatusSuccess {
			return op, st
		}
		op.Kind = OperandFarAddress
		op.Slot = SlotImmediate
		op.Far = FarAddress{Segment: uint16(seg), Offset: off}
		in.HasFarPointer = true
		in.FarOffset = off
		in.FarSegment = uint16(seg)

	case "O":
		moffLen := wordLength(in.EffAddrSize)
		v, st := s.fetchData(in.Length, moffLen)
		if st != StatusSuccess {
			return op, st
		}
		if st := s.grow(moffLen); st != StatusSuccess {
			return op, st
		}
		op.Kind = OperandMemory
		op.Slot = SlotDisplacement
		op.Memory = MemoryOperand{HasDisp: true, Disp: int32(v), DispSize: moffLen, IsDirect: true, HasSegment: true, Segment: effectiveSegment(in)}
		in.HasMoffset = true
		in.Moffset = v
		in.MoffsetSize = moffLen

	default:
		op.Kind = OperandNone
		op.Slot = SlotImplicit
	}

	return op, StatusSuccess
}

// fetchImmediate reads the next n-byte little-endian immediate and records
// it in the instruction's immediate slot list (up to three per spec.md
// §3.1 "Immediates").
func fetchImmediate(s *stream, n uint8) (uint64, Status) {
	in := s.instr
	v, st := s.fetchData(in.Length, n)
	if st != StatusSuccess {
		return 0, st
	}
	if in.ImmCount < uint8(len(in.ImmValue)) {
		i := in.ImmCount
		in.ImmValue[i] = v
		in.ImmLength[i] = n
		in.ImmOffset[i] = in.Length
		in.ImmCount++
	}
	if st := s.grow(n); st != StatusSuccess {
		return 0, st
	}
	return v, StatusSuccess
}

func signExtend(v uint64, size uint8) int64 {
	switch size {
	case 1:
		return int64(int8(v))
	case 2:
		return int64(int16(v))
	case 4:
		return int64(int32(v))
	default:
		return int64(v)
	}
}

// effectiveSegment returns the segment override in effect, or DS by default
// (spec.md §4.7 "Memory address builder").
func effectiveSegment(in *Instruction) Register {
	if in.HasSeg {
		switch in.Seg {
		case prefixSegES:
			return ES
		case prefixSegCS:
			return CS
		case prefixSegSS:
			return SS
		case prefixSegDS:
			return DS
		case prefixSegFS:
			return FS
		case prefixSegGS:
			return GS
		}
	}
	return DS
}

// buildMemory constructs the memory operand's (segment, base, index, scale,
// displacement) tuple (spec.md §4.7 "Memory address builder").
func buildMemory(in *Instruction, size uint8) MemoryOperand {
	mrm := splitModRM(in.ModRM)

	if in.EffAddrSize == Mode16 {
		return buildMemory16(in, mrm, size)
	}
	return buildMemory3264(in, mrm, size)
}

func buildMemory16(in *Instruction, mrm modrmFields, size uint8) MemoryOperand {
	type entry struct {
		base, index Register
		hasBase     bool
		hasIndex    bool
		seg         Register
	}
	table := [8]entry{
		{base: BX, index: SI, hasBase: true, hasIndex: true, seg: DS},
		{base: BX, index: DI, hasBase: true, hasIndex: true, seg: DS},
		{base: BP, index: SI, hasBase: true, hasIndex: true, seg: SS},
		{base: BP, index: DI, hasBase: true, hasIndex: true, seg: SS},
		{base: SI, hasBase: true, seg: DS},
		{base: DI, hasBase: true, seg: DS},
		{base: BP, hasBase: true, seg: SS},
		{base: BX, hasBase: true, seg: DS},
	}
	e := table[mrm.RM]

	mem := MemoryOperand{HasSegment: true, Segment: e.seg}
	if mrm.RM == 6 && mrm.Mod == 0 {
		// Direct disp16 addressing: no base.
		mem.Segment = DS
	} else {
		mem.HasBase, mem.Base = e.hasBase, e.base
		mem.HasIndex, mem.Index = e.hasIndex, e.index
	}
	if in.HasSeg {
		mem.Segment = effectiveSegment(in)
	}
	if in.HasDisp {
		mem.HasDisp = true
		mem.Disp = in.Disp
		mem.DispSize = in.DispLength
	}
	return mem
}

func buildMemory3264(in *Instruction, mrm modrmFields, size uint8) MemoryOperand {
	mem := MemoryOperand{HasSegment: true, Segment: DS}
	addrSize := uint8(4)
	if in.EffAddrSize == Mode64 {
		addrSize = 8
	}

	rm := mrm.RM
	if rm == 4 && in.HasSIB {
		sib := splitSIB(in.SIB)
		mem.Scale = 1 << sib.Scale
		if sib.Index == 4 && in.Exs.X == 0 {
			// no index (SIB.index==4 without VEX/EVEX.X extending it)
		} else {
			idx := regIndex(sib.Index, in.Exs.X, 0)
			mem.HasIndex = true
			mem.Index = GPRegister(idx, addrSize, true)
			mem.IsSIBMem = true
		}
		if mrm.Mod == 0 && sib.Base == 5 {
			// no base, disp32 follows
		} else {
			baseIdx := regIndex(sib.Base, in.Exs.B, 0)
			mem.HasBase = true
			mem.Base = GPRegister(baseIdx, addrSize, true)
			// Default segment is SS for the raw (E)SP/(E)BP encodings, keyed
			// off the un-extended 3-bit field, not the REX-extended index:
			// R12/R13 as SIB base still default to SS.
			if sib.Base == 4 || sib.Base == 5 {
				mem.Segment = SS
			}
		}
	} else {
		if mrm.Mod == 0 && rm == 5 {
			if in.DefCode == Mode64 {
				mem.IsRipRel = true
				in.IsRipRelative = true
			}
			// no base: disp32 (RIP-relative in 64-bit mode, absolute in 32-bit)
		} else {
			baseIdx := regIndex(rm, in.Exs.B, 0)
			mem.HasBase = true
			mem.Base = GPRegister(baseIdx, addrSize, true)
			if rm == 4 || rm == 5 {
				mem.Segment = SS
			}
		}
	}

	if in.HasSeg {
		mem.Segment = effectiveSegment(in)
	}
	if in.HasDisp {
		mem.HasDisp = true
		mem.Disp = in.Disp
		mem.DispSize = in.DispLength
	}
	return mem
}

// buildMemoryEvex extends buildMemory3264 with EVEX-specific concerns:
// compressed-displacement scaling and the VSIB addressing gather/scatter
// instructions use (spec.md §4.7, Glossary "Compressed displacement").
func buildMemoryEvex(in *Instruction, spec *tables.OperandSpec, size uint8) MemoryOperand {
	mrm := splitModRM(in.ModRM)
	mem := buildMemory3264(in, mrm, size)

	if in.Encoding != EncodingEVEX {
		return mem
	}

	broadcast := spec.Decorators&tables.OpDecBroadcast != 0 && in.Exs.BM && in.Attributes.Has(AttrSupportsBroadcast)
	elemSize := size
	if broadcast {
		if size == 4 || in.TupleType == TupleNone {
			elemSize = 4
		}
		if in.Exs.W == 1 {
			elemSize = 8
		}
		mem.IsBitbase = false
	}

	if mem.HasDisp && mem.DispSize == 1 {
		scale := compressedDisplacementScale(in.TupleType, in.EffVectorLen, broadcast, elemSize)
		mem.HasCompDisp = true
		mem.CompDispSize = scale
		mem.Disp = mem.Disp * int32(scale)
		in.HasCompDisp = true
		in.CompDispSize = scale
	}

	if spec.Type == "W" && (spec.SizeCode == "vm32x" || spec.SizeCode == "vm32y" || spec.SizeCode == "vm32z" ||
		spec.SizeCode == "vm64x" || spec.SizeCode == "vm64y" || spec.SizeCode == "vm64z") {
		mem.IsVSIB = true
		mem.VSIBElemSize = vsibElementSize(spec.SizeCode)
		mem.VSIBCount = vsibCount(spec.SizeCode, in.EffVectorLen)
		if in.HasSIB {
			sib := splitSIB(in.SIB)
			idx := regIndex(sib.Index, in.Exs.X, in.Exs.Vp)
			mem.HasIndex = true
			mem.Index = VectorRegister(idx, in.EffVectorLen)
		}
	}

	return mem
}

// applyEvexDecorators fills the mask/zeroing/SAE/embedded-rounding fields of
// a register-kind operand from the extension record, when the operand
// specifier declares them legal (spec.md §4.7 "Decorations applied after
// identity/size").
func applyEvexDecorators(in *Instruction, spec *tables.OperandSpec, op *Operand, isRegDest bool) {
	if in.Encoding != EncodingEVEX {
		return
	}
	if spec.Decorators&tables.OpDecMask != 0 && in.Exs.K != 0 {
		op.Decorator.MaskRegister = in.Exs.K
	}
	if spec.Decorators&tables.OpDecZeroing != 0 && in.Exs.Z && isRegDest {
		op.Decorator.Zeroing = true
	}
	if spec.Decorators&tables.OpDecSAE != 0 && in.Exs.BM && isRegDest && in.Attributes.Has(AttrSupportsSAEER) {
		op.Decorator.SAE = true
		op.Decorator.EmbeddedRounding = true
		op.Decorator.RoundingMode = in.Exs.L
	}
}
