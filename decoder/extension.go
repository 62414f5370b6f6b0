package decoder

// ExtensionRecord is the normalized union of every bit the four extended
// encoding prefix families (REX, XOP, VEX, EVEX) contribute to register
// selection, vector length and decoration. Each fetcher inverts the
// on-the-wire polarity before storing here (spec.md §3.1, Design Notes
// "Shared bit-field struct"), so nothing downstream ever re-interprets
// wire polarity: a 1 here always means "this extension bit is set".
type ExtensionRecord struct {
	W  uint8 // operand size override (0/1)
	R  uint8 // extends ModRM.reg (0/1)
	X  uint8 // extends SIB.index (0/1)
	B  uint8 // extends ModRM.rm / SIB.base / opcode-embedded reg (0/1)
	Rp uint8 // R', extends ModRM.reg to 5 bits (EVEX only) (0/1)
	Bp uint8 // B' / V4, extends ModRM.rm/base to 5 bits (EVEX only) (0/1)
	V  uint8 // vvvv, 4-bit NDS/NDD register selector (logical, not inverted)
	Vp uint8 // V', extends vvvv to 5 bits (EVEX only) (0/1)
	M  uint8 // VEX/XOP/EVEX opcode-map selector (up to 5 bits)
	P  uint8 // VEX/XOP.pp: the {none,66,F2,F3} mandatory-prefix selector (2 bits)
	L  uint8 // vector-length selector: VEX.L, XOP.L, or EVEX.L'L (up to 2 bits)
	Z  bool  // EVEX.z, zeroing decorator
	BM bool  // EVEX.b, broadcast/SAE/embedded-rounding modifier bit
	K  uint8 // EVEX.aaa / mask register index (3 bits)
}

// regIndex combines a 3-bit ModRM/SIB/opcode field with its REX/VEX/XOP/EVEX
// extension bit(s) to produce the full register index. ext is the extension
// bit that extends this particular field (R, X, or B), and top is the
// EVEX-only 5th bit (R', B') when applicable.
func regIndex(field uint8, ext uint8, top uint8) uint8 {
	return field | (ext << 3) | (top << 4)
}

// effectiveMaxVectorLength returns the widest vector length (in bytes) the
// instruction's tuple type allows when EVEX embedded rounding/SAE forces L
// to its maximum (spec.md §4.2): 512 bits in general, 128 bits for the T1S
// and T1F tuple types.
func effectiveMaxVectorLength(tuple TupleType) uint8 {
	switch tuple {
	case TupleT1S, TupleT1F:
		return 16
	default:
		return 64
	}
}
