package decoder

// Decode decodes the first instruction in code using the given default code
// and data sizes, a generic vendor, and every feature enabled (spec.md §6.1
// "Uses default-data also as the default stack size and picks a generic
// vendor with all features enabled").
func Decode(in *Instruction, code []byte, defCode, defData Mode) Status {
	ctx := Context{DefCode: defCode, DefData: defData, DefStack: defData, Vendor: VendorAny, Features: FeatureAll}
	return DecodeWithContext(in, code, &ctx)
}

// DecodeEx decodes with an explicit default stack size and vendor, in
// between Decode's convenience and DecodeWithContext's full control
// (spec.md §6.1).
func DecodeEx(in *Instruction, code []byte, defCode, defData, defStack Mode, vendor Vendor) Status {
	ctx := Context{DefCode: defCode, DefData: defData, DefStack: defStack, Vendor: vendor, Features: FeatureAll}
	return DecodeWithContext(in, code, &ctx)
}

// DecodeWithContext is the main decode path (spec.md §6.1): it validates
// the context, zero-initializes the record, and runs the prefix resolver,
// mode resolver, table walker (which resolves operands and validates as it
// lands on a leaf), then records the consumed raw bytes.
func DecodeWithContext(in *Instruction, code []byte, ctx *Context) Status {
	if in == nil || len(code) == 0 {
		return StatusInvalidParameter
	}
	if !ctx.valid() {
		return StatusInvalidParameter
	}

	*in = Instruction{}
	in.DefCode = ctx.DefCode
	in.DefData = ctx.DefData
	in.DefStack = ctx.DefStack
	in.Vendor = ctx.Vendor
	in.Features = ctx.Features

	s := &stream{code: code, instr: in}

	if st := resolvePrefixes(s); st != StatusSuccess {
		return st
	}
	resolveModes(in)
	if st := walk(s); st != StatusSuccess {
		return st
	}

	copy(in.Bytes[:in.Length], code[:in.Length])
	return StatusSuccess
}

// IsRipRelative reports whether any memory operand in the decoded
// instruction uses RIP-relative addressing (spec.md §6.1, §8 property 6).
func IsRipRelative(in *Instruction) bool {
	return in.IsRipRelative
}
