package decoder

// FlagsMask is a bitmap over the architectural RFLAGS register, used for
// the record's set/cleared/modified/tested/undefined flag-access fields
// (spec.md §3.1 "Flag access").
type FlagsMask uint32

const (
	FlagCF FlagsMask = 1 << iota
	FlagPF
	FlagAF
	FlagZF
	FlagSF
	FlagTF
	FlagIF
	FlagDF
	FlagOF
)

// FlagAccess groups the five ways an instruction can touch RFLAGS.
type FlagAccess struct {
	Set       FlagsMask
	Cleared   FlagsMask
	Modified  FlagsMask
	Tested    FlagsMask
	Undefined FlagsMask
}
