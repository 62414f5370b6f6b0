package decoder

// resolveModes fills in.EffAddrSize, EffOpSize, EffVectorLen and WordLength
// from the default mode triple, the legacy override prefixes and the
// extension record (spec.md §4.5). It must run after resolvePrefixes and
// before the table walker descends into any Address-size/Data-size node.
func resolveModes(in *Instruction) {
	in.EffAddrSize = effectiveAddressSize(in)
	in.EffOpSize = effectiveOperandSize(in)
	in.EffVectorLen = effectiveVectorLength(in)
	in.WordLength = wordLength(in.EffOpSize)
}

// effectiveAddressSize toggles between the two address sizes the default
// code size allows, per the address-size-override prefix.
func effectiveAddressSize(in *Instruction) Mode {
	if in.Attributes.Has(AttrIgnore67) {
		return Mode64
	}
	switch in.DefCode {
	case Mode64:
		if in.HasAddrSize {
			return Mode32
		}
		return Mode64
	case Mode32:
		if in.HasAddrSize {
			return Mode16
		}
		return Mode32
	default: // Mode16
		if in.HasAddrSize {
			return Mode32
		}
		return Mode16
	}
}

// effectiveOperandSize implements the REX.W > F64 > 66 > D64 precedence of
// spec.md §4.5 "Effective operand mode".
func effectiveOperandSize(in *Instruction) Mode {
	base := baseOperandSize(in)

	// A mandatory 66 used as part of the opcode selector does not also
	// contribute to operand size, unless the leaf is marked S66.
	opSize66 := in.HasOpSize && (!in.HasMandatory66 || in.Attributes.Has(AttrS66))

	switch {
	case in.DefCode == Mode64 && in.Exs.W == 1:
		return Mode64
	case in.DefCode == Mode64 && in.Attributes.Has(AttrForce64):
		// F64 is Intel-only and wins over 66 regardless of vendor check
		// here: the vendor gate lives in the table (a non-Intel leaf simply
		// never carries AttrForce64).
		return Mode64
	case in.DefCode == Mode64 && in.Attributes.Has(AttrDefault64) && !opSize66:
		return Mode64
	case opSize66:
		if base == Mode16 {
			return Mode32
		}
		return Mode16
	default:
		return base
	}
}

func baseOperandSize(in *Instruction) Mode {
	switch in.DefCode {
	case Mode64:
		return Mode32
	case Mode32:
		return Mode32
	default:
		return Mode16
	}
}

// effectiveVectorLength derives the EVEX/VEX vector length in bytes from the
// extension record's L bits, honoring the "L ignored" attribute and the
// EVEX static-rounding override of spec.md §4.2.
func effectiveVectorLength(in *Instruction) uint8 {
	if in.Encoding == EncodingLegacy {
		return 0
	}
	if in.Attributes.Has(AttrIgnoreL) {
		return 16
	}
	if in.Encoding == EncodingEVEX && in.Exs.BM && in.HasModRM {
		mrm := splitModRM(in.ModRM)
		if mrm.Mod == 3 && in.Attributes.Has(AttrSupportsSAEER) {
			return effectiveMaxVectorLength(in.TupleType)
		}
	}
	switch in.Exs.L {
	case 0:
		return 16
	case 1:
		return 32
	case 2:
		return 64
	default:
		return 64
	}
}

// wordLength is the effective operand size in bytes, capped at 8 (spec.md
// §4.5 "Word length").
func wordLength(eff Mode) uint8 {
	switch eff {
	case Mode16:
		return 2
	case Mode64:
		return 8
	default:
		return 4
	}
}

// resolveStackSize picks the effective stack address size the same way
// effectiveAddressSize picks the effective address size, but rooted at
// in.DefStack rather than in.DefCode, and a 64-bit stack is never
// overridden by the 67 prefix: PUSH/POP/CALL/RET near forms use it
// to size their implicit stack-pointer adjustment (spec.md §3.3).
func resolveStackSize(in *Instruction) Mode {
	switch in.DefStack {
	case Mode64:
		return Mode64
	case Mode32:
		if in.HasAddrSize {
			return Mode16
		}
		return Mode32
	default:
		if in.HasAddrSize {
			return Mode32
		}
		return Mode16
	}
}
