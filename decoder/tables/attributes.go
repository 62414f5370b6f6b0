package tables

// Attributes is a bitset of leaf-level instruction attributes. It lives here
// rather than in package decoder so that Leaf literals (legacy.go, vex.go,
// xop.go, evex.go) can use the named constants directly; decoder.Attributes
// is a type alias of this type, so there is exactly one bit layout, not two
// kept in sync by hand.
type Attributes uint32

const (
	AttrModRM            Attributes = 1 << iota // instruction requires ModR/M
	AttrModRMForceReg                            // ModR/M.mod is forced to register form (e.g. MOV to/from CR/DR)
	AttrInvalid64                                // I64: invalid in 64-bit mode
	AttrOnly64                                   // O64: only valid in 64-bit mode
	AttrDefault64                                // D64: defaults to 64-bit operand size in 64-bit mode
	AttrForce64                                  // F64: forces 64-bit operand size regardless of 66 (Intel only)
	AttrIgnore67                                 // address-size-override prefix is ignored
	AttrIgnoreL                                  // vector length bit is ignored (L is not part of the form selector)
	AttrS66                                      // 66 contributes to operand size even though it is also mandatory
	AttrNo66                                     // 66 prefix is forbidden (#UD if present)
	AttrLockable                                 // participates in the lock-capable instruction set
	AttrVVVVMustBeZero                           // VEX/XOP/EVEX.vvvv must be 0
	AttrNoL0                                     // #UD if the effective vector length is 128-bit
	AttrMandatoryMask                            // EVEX.aaa == 0 (k0) is rejected
	AttrSupportsZeroing                          // EVEX.z is a legal decorator
	AttrSupportsBroadcast                        // EVEX.b may select a broadcast memory operand
	AttrSupportsSAEER                            // EVEX.b may select SAE/embedded-rounding on reg-reg forms
	AttrIgnoreEmbeddedRounding                   // EVEX.b is legal but carries no SAE/ER meaning (e.g. some converts)
	Attr3DNow                                    // opcode byte follows ModR/M+displacement (3DNow! encoding)
	AttrIsGatherScatter                          // VSIB gather/scatter family (uniqueness check applies)
	AttrIsScatter                                // the SCATTER exemption to the VSIB uniqueness rule
	AttrIsAMXE4                                  // AMX tile instruction: dst/src1/src2 must be pairwise distinct
	AttrNoRepPrefix                              // not valid with F2/F3 mandatory prefixes beyond the table-selected one
)

func (a Attributes) Has(want Attributes) bool { return a&want == want }
