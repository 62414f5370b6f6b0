package decoder

// Mode is an effective or default operating size: code size, data size,
// stack size, address size or vector length all reuse this type since they
// all range over the same {16, 32, 64} (plus a handful of pseudo-values for
// vector length, see VectorLength).
type Mode int

const (
	Mode16 Mode = 16
	Mode32 Mode = 32
	Mode64 Mode = 64
)

// Vendor selects the dialect used to resolve the handful of decode
// decisions that differ between manufacturers (e.g. LOCK MOV-to-CR in
// non-64-bit mode, F64 operand-size forcing which is Intel-only).
type Vendor int

const (
	VendorAny Vendor = iota
	VendorIntel
	VendorAMD
	VendorCyrix
)

// Feature is a bitset of optional ISA extensions that gate a handful of
// encodings whose validity depends on more than just the opcode bytes.
type Feature uint32

const (
	FeatureMPX Feature = 1 << iota
	FeatureCET
	FeatureCLDemote
)

// FeatureAll enables every feature the decoder knows about. Decode and
// DecodeEx always use FeatureAll, matching the
// original library's "decode liberally by default" behavior.
const FeatureAll Feature = FeatureMPX | FeatureCET | FeatureCLDemote

// Has reports whether every bit in want is set in the feature set.
func (f Feature) Has(want Feature) bool {
	return f&want == want
}

// Context is the caller-supplied, read-mostly configuration for a decode
// call (spec.md §3.3). It is the decoder's only external dependency besides
// the input buffer, and is never mutated by the decoder.
type Context struct {
	DefCode  Mode
	DefData  Mode
	DefStack Mode
	Vendor   Vendor
	Features Feature
}

// InitContext zeroes ctx. Callers that want a ready-to-use generic context
// should follow it with an explicit assignment of DefCode/DefData/DefStack;
// InitContext alone leaves the context in the invalid (mode == 0) state
// DecodeWithContext rejects, mirroring the original's "init then configure"
// two-step.
func InitContext(ctx *Context) {
	*ctx = Context{}
}

// valid reports whether every field of ctx is in its legal range (spec.md
// §6.1 DecodeWithContext: "Validates context ranges").
func (ctx *Context) valid() bool {
	if ctx == nil {
		return false
	}
	if !validMode(ctx.DefCode) || !validMode(ctx.DefData) || !validMode(ctx.DefStack) {
		return false
	}
	switch ctx.Vendor {
	case VendorAny, VendorIntel, VendorAMD, VendorCyrix:
	default:
		return false
	}
	return true
}

func validMode(m Mode) bool {
	return m == Mode16 || m == Mode32 || m == Mode64
}
