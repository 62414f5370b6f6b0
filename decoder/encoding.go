package decoder

// EncodingFamily is the top-level encoding family an instruction was
// fetched under (spec.md §3.1 "Encoding family").
type EncodingFamily int

const (
	// EncodingLegacy - plain opcode, optionally REX-prefixed.
	EncodingLegacy EncodingFamily = iota
	// EncodingXOP - the AMD XOP prefix (0x8F with a map field, the low 5 bits of the next byte, >= 8).
	EncodingXOP
	// EncodingVEX - the VEX prefix, either 2-byte (0xC5) or 3-byte (0xC4) form.
	EncodingVEX
	// EncodingEVEX - the 4-byte EVEX prefix (0x62).
	EncodingEVEX
	// EncodingMVEX - reserved; Knights-family only, never produced by this decoder.
	EncodingMVEX
)

// VexForm distinguishes the two VEX prefix encodings; it is meaningless
// outside EncodingVEX.
type VexForm int

const (
	VexFormNone VexForm = iota
	VexForm2Byte
	VexForm3Byte
)

func (f EncodingFamily) String() string {
	switch f {
	case EncodingLegacy:
		return "legacy"
	case EncodingXOP:
		return "xop"
	case EncodingVEX:
		return "vex"
	case EncodingEVEX:
		return "evex"
	case EncodingMVEX:
		return "mvex"
	default:
		return "unknown"
	}
}
