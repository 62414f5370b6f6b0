package decoder

import "github.com/keurnel/decoder/decoder/tables"

// land is reached once the table walker lands on a leaf (spec.md §4.6): it
// finishes any addressing fetch the leaf's attributes call for, rejects
// mode-prohibited leaves, copies the leaf's static classification into the
// instruction record, resolves every operand, and finally runs the
// validator.
func land(s *stream, leaf *tables.Leaf) Status {
	in := s.instr

	if leaf.Attributes.Has(AttrModRM) && !in.HasModRM {
		if st := fetchModRM(s); st != StatusSuccess {
			return st
		}
	}
	if leaf.Attributes.Has(AttrModRM) {
		if leaf.Attributes.Has(AttrModRMForceReg) {
			if splitModRM(in.ModRM).Mod != 3 {
				return StatusInvalidEncoding
			}
		} else {
			if st := fetchModRMAndSIB(s); st != StatusSuccess {
				return st
			}
			if in.HasModRM && splitModRM(in.ModRM).Mod != 3 {
				if st := fetchDisplacement(s); st != StatusSuccess {
					return st
				}
			}
		}
	}

	if leaf.Attributes.Has(AttrInvalid64) && in.DefCode == Mode64 {
		return StatusInvalidEncodingInMode
	}
	if leaf.Attributes.Has(AttrOnly64) && in.DefCode != Mode64 {
		return StatusInvalidEncodingInMode
	}

	applyDecoratorGlobals(in)

	in.Mnemonic = leaf.Mnemonic
	in.Class = InstructionClass(leaf.Class)
	in.Category = Category(leaf.Category)
	in.ISASet = ISASet(leaf.ISASet)
	in.ExceptionClass = ExceptionClass(leaf.ExceptionClass)
	in.ExceptionType = leaf.ExceptionType
	in.CPUIDFeature = CPUIDFeature(leaf.CPUIDFeature)
	in.TupleType = TupleType(leaf.TupleType)
	in.Attributes = leaf.Attributes
	in.ExplicitCount = leaf.ExplicitCount
	in.ImplicitCount = leaf.ImplicitCount

	// The preliminary mode resolve (run before the walk, from prefixes
	// alone) let the TagDataSize/TagAddressSize selector nodes work; now
	// that the leaf's attributes are known, recompute so D64/F64/S66/
	// IgnoreL/SAE-ER can take effect before operand sizes are read
	// (spec.md §4.5 "from the default mode, the prefixes, and instruction
	// attributes").
	resolveModes(in)
	in.Flags = FlagAccess{
		Tested:    FlagsMask(leaf.FlagsTested),
		Modified:  FlagsMask(leaf.FlagsModified),
		Set:       FlagsMask(leaf.FlagsSet),
		Cleared:   FlagsMask(leaf.FlagsCleared),
		Undefined: FlagsMask(leaf.FlagsUndefined),
	}

	count := leaf.ExplicitCount + leaf.ImplicitCount
	for i := uint8(0); i < count && i < MaxOperands; i++ {
		op, st := resolveOperand(s, &leaf.Operands[i])
		if st != StatusSuccess {
			return st
		}
		in.Operands[i] = op
		in.OperandSlotMask |= 1 << uint(op.Slot)
		switch {
		case op.Kind == OperandMemory:
			in.AccessMemory = in.AccessMemory.merge(op.Access)
			if op.Memory.IsStack {
				in.AccessStack = in.AccessStack.merge(op.Access)
			}
		case op.Kind == OperandRegister && op.Register.Reg.Class == RegIP:
			in.AccessRIP = in.AccessRIP.merge(op.Access)
		case op.Kind == OperandRegister && op.Register.Reg.Class == RegFlags:
			in.AccessFlagsReg = in.AccessFlagsReg.merge(op.Access)
		}
	}
	in.OperandCount = count

	return validate(in)
}

// applyDecoratorGlobals mirrors the winning EVEX decorator bits onto the
// instruction-level convenience fields (spec.md §3.1 "Decorator flags").
func applyDecoratorGlobals(in *Instruction) {
	if in.Encoding != EncodingEVEX {
		return
	}
	in.HasMask = in.Exs.K != 0
	in.HasZeroing = in.Exs.Z
	if in.Exs.BM {
		if in.HasModRM && splitModRM(in.ModRM).Mod == 3 {
			in.HasSAE = true
			in.HasEmbeddedRounding = true
			in.RoundingMode = in.Exs.L
		} else {
			in.HasBroadcast = true
		}
	}
}
