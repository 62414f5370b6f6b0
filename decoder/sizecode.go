package decoder

// resolveSize computes an operand's architectural size in bytes from its
// size code (spec.md §4.7 "Size computation"). Families:
//   - fixed: b/w/d/q/dq/qq/oq (and the handful of FPU/descriptor sizes)
//   - mode-dependent: v (16/32/64 per effective operand mode), z (16/32/32),
//     y (32/32/64), d64 (like v, but defaults to 64 in 64-bit mode)
//   - vector-length-dependent: x/fv/hv and friends (128/256/512 or a
//     fraction thereof, driven by the effective vector length)
//   - address/stack-size-dependent: asz, ssz
func resolveSize(code string, in *Instruction) uint8 {
	switch code {
	case "b":
		return 1
	case "w":
		return 2
	case "d":
		return 4
	case "q":
		return 8
	case "dq":
		return 16
	case "qq":
		return 32
	case "oq":
		return 64

	case "v":
		return wordLength(in.EffOpSize)
	case "d64":
		if in.DefCode == Mode64 {
			return 8
		}
		return wordLength(in.EffOpSize)
	case "z":
		if in.EffOpSize == Mode16 {
			return 2
		}
		return 4
	case "y":
		if in.EffOpSize == Mode64 {
			return 8
		}
		return 4
	case "p":
		return wordLength(in.EffOpSize) + 2 // far pointer: offset + 2-byte selector
	case "s":
		return 6 // pseudo-descriptor (limit:base), 16-bit mode variant
	case "ssz":
		return wordLength(resolveStackSize(in))
	case "asz":
		return wordLength(in.EffAddrSize)

	case "x", "fv", "fvm":
		return in.EffVectorLen
	case "hv", "hvm":
		return in.EffVectorLen / 2
	case "qvm":
		return in.EffVectorLen / 4
	case "ovm":
		return in.EffVectorLen / 8
	case "m128":
		return 16

	default:
		return wordLength(in.EffOpSize)
	}
}

// vsibElementSize/vsibCount resolve the VSIB size-code family ("vm32x",
// "vm32y", "vm32z", "vm64x", "vm64y", "vm64z" and their half/none variants):
// a pair of (index element size, index element count) describing the
// gather/scatter index vector (spec.md §4.7 "VSIB sizes").
func vsibElementSize(code string) uint8 {
	switch {
	case len(code) >= 4 && code[:4] == "vm32":
		return 4
	case len(code) >= 4 && code[:4] == "vm64":
		return 8
	default:
		return 4
	}
}

func vsibCount(code string, vectorLen uint8) uint8 {
	elemSize := vsibElementSize(code)
	indexVectorLen := vectorLen
	if len(code) > 4 {
		switch code[4] {
		case 'h':
			indexVectorLen = vectorLen / 2
		case 'n':
			indexVectorLen = vectorLen / 4
		}
	}
	if elemSize == 0 {
		return 0
	}
	return indexVectorLen / elemSize
}
