package decoder

// Legacy and REX prefix byte values (spec.md §4.4, Glossary "REX").
const (
	prefixLock        byte = 0xF0 // LOCK
	prefixRepNE       byte = 0xF2 // REPNE/REPNZ, also XACQUIRE, also mandatory F2
	prefixRep         byte = 0xF3 // REP/REPE/REPZ, also XRELEASE, also mandatory F3
	prefixSegCS       byte = 0x2E // CS override / branch-not-taken hint
	prefixSegSS       byte = 0x36 // SS override
	prefixSegDS       byte = 0x3E // DS override / branch-taken hint
	prefixSegES       byte = 0x26 // ES override
	prefixSegFS       byte = 0x64 // FS override
	prefixSegGS       byte = 0x65 // GS override
	prefixOperandSize byte = 0x66 // operand-size override / mandatory 66
	prefixAddressSize byte = 0x67 // address-size override
	prefixRexBase     byte = 0x40 // REX.___, 0x40-0x4F
	prefixRexMask     byte = 0xF0

	prefixXOP    byte = 0x8F
	prefixVEX3   byte = 0xC4
	prefixVEX2   byte = 0xC5
	prefixEVEX   byte = 0x62
)

// prefixKind classifies a single byte for the prefix-resolver state machine
// (spec.md §4.4 step 1).
type prefixKind int

const (
	prefixKindNone prefixKind = iota
	prefixKindStandard
	prefixKindRex
	prefixKindExtended
)

// prefixMap is the 256-entry classification table spec.md §4.4 calls for.
// It is built once in init() instead of written out by hand: a hand
// written 256-entry literal would be pure repetition of the switch below.
var prefixMap [256]prefixKind

func init() {
	standard := []byte{
		prefixLock, prefixRepNE, prefixRep,
		prefixSegCS, prefixSegSS, prefixSegDS, prefixSegES, prefixSegFS, prefixSegGS,
		prefixOperandSize, prefixAddressSize,
	}
	for _, b := range standard {
		prefixMap[b] = prefixKindStandard
	}
	for b := prefixRexBase; b < prefixRexBase+0x10; b++ {
		prefixMap[b] = prefixKindRex
	}
	prefixMap[prefixXOP] = prefixKindExtended
	prefixMap[prefixVEX2] = prefixKindExtended
	prefixMap[prefixVEX3] = prefixKindExtended
	prefixMap[prefixEVEX] = prefixKindExtended
}

// rexBits splits a REX byte into its W/R/X/B bits.
type rexBits struct {
	W, R, X, B uint8
}

func decodeRex(b byte) rexBits {
	return rexBits{
		W: (b >> 3) & 1,
		R: (b >> 2) & 1,
		X: (b >> 1) & 1,
		B: b & 1,
	}
}

// isSegmentOverride reports whether b is one of the six group-2 segment
// override prefixes.
func isSegmentOverride(b byte) bool {
	switch b {
	case prefixSegCS, prefixSegSS, prefixSegDS, prefixSegES, prefixSegFS, prefixSegGS:
		return true
	default:
		return false
	}
}
