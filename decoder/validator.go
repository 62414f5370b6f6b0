package decoder

// validate runs the cross-cutting, post-decode checks of spec.md §4.8 that
// cannot be baked into the forest itself. It is the last step of land().
func validate(in *Instruction) Status {
	if in.HasLock {
		if !in.Attributes.Has(AttrLockable) {
			return StatusBadLockPrefix
		}
		if in.OperandCount == 0 || in.Operands[0].Kind != OperandMemory {
			// The AMD MOV-to/from-CR exception: LOCK ahead of the opcode
			// selects the extended CR8 encoding in non-64-bit mode.
			if !(in.Class == "MOV" && in.DefCode != Mode64) {
				return StatusBadLockPrefix
			}
		}
	}

	if in.HasOpSize && in.Attributes.Has(AttrNo66) {
		return StatusBad66Prefix
	}

	if in.Attributes.Has(AttrVVVVMustBeZero) && in.Exs.V != 0 {
		return StatusBadVVVV
	}

	if in.Attributes.Has(AttrNoL0) && in.EffVectorLen == 16 {
		return StatusInvalidEncoding
	}

	if in.Attributes.Has(AttrIsGatherScatter) && !in.Attributes.Has(AttrIsScatter) {
		if st := checkVSIBUniqueness(in); st != StatusSuccess {
			return st
		}
	}

	if in.Attributes.Has(AttrIsAMXE4) {
		if st := checkTileDistinctness(in); st != StatusSuccess {
			return st
		}
	}

	if in.Attributes.Has(AttrMandatoryMask) && in.Encoding == EncodingEVEX && in.Exs.K == 0 {
		return StatusMaskRequired
	}

	if in.HasZeroing {
		if !in.Attributes.Has(AttrSupportsZeroing) {
			return StatusDecoratorNotSupported
		}
		if in.OperandCount > 0 && in.Operands[0].Kind == OperandMemory {
			return StatusDecoratorNotSupported
		}
	}

	if in.HasBroadcast && !in.Attributes.Has(AttrSupportsBroadcast) {
		return StatusDecoratorNotSupported
	}
	if (in.HasSAE || in.HasEmbeddedRounding) &&
		!in.Attributes.Has(AttrSupportsSAEER) && !in.Attributes.Has(AttrIgnoreEmbeddedRounding) {
		return StatusDecoratorNotSupported
	}

	return StatusSuccess
}

// checkVSIBUniqueness rejects gather/scatter decodes where the destination,
// VSIB index and any source reference the same vector register (spec.md §8
// property 8).
func checkVSIBUniqueness(in *Instruction) Status {
	seen := map[uint8]bool{}
	for i := uint8(0); i < in.OperandCount; i++ {
		op := &in.Operands[i]
		switch {
		case op.Kind == OperandRegister && op.Register.Reg.Class == RegVector:
			if seen[op.Register.Reg.Index] {
				return StatusInvalidVSIBRegisters
			}
			seen[op.Register.Reg.Index] = true
		case op.Kind == OperandMemory && op.Memory.IsVSIB && op.Memory.HasIndex:
			if seen[op.Memory.Index.Index] {
				return StatusInvalidVSIBRegisters
			}
			seen[op.Memory.Index.Index] = true
		}
	}
	return StatusSuccess
}

// checkTileDistinctness enforces the AMX E4 exception class rule: dest,
// src1 and src2 tile operands must be pairwise distinct.
func checkTileDistinctness(in *Instruction) Status {
	var indices []uint8
	for i := uint8(0); i < in.OperandCount; i++ {
		op := &in.Operands[i]
		if op.Kind == OperandRegister && op.Register.Reg.Class == RegTile {
			indices = append(indices, op.Register.Reg.Index)
		}
	}
	for i := 0; i < len(indices); i++ {
		for j := i + 1; j < len(indices); j++ {
			if indices[i] == indices[j] {
				return StatusInvalidRegisterInInstruction
			}
		}
	}
	return StatusSuccess
}
