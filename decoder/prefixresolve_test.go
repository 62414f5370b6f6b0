package decoder

import "testing"

func TestResolvePrefixesLegacyRun(t *testing.T) {
	// LOCK + operand-size + REX.W, then an opcode byte.
	code := []byte{0xF0, 0x66, 0x48, 0x01, 0xC0}
	in := &Instruction{DefCode: Mode64}
	s := &stream{code: code, instr: in}
	if st := resolvePrefixes(s); st != StatusSuccess {
		t.Fatalf("resolvePrefixes: %v", st)
	}
	if !in.HasLock || !in.HasOpSize || !in.HasRex {
		t.Fatalf("prefix bits = lock:%v opsize:%v rex:%v, want all true", in.HasLock, in.HasOpSize, in.HasRex)
	}
	if in.Exs.W != 1 {
		t.Fatalf("Exs.W = %d, want 1", in.Exs.W)
	}
	if in.OpcodeOffset != 3 {
		t.Fatalf("OpcodeOffset = %d, want 3", in.OpcodeOffset)
	}
}

func TestResolvePrefixesRexClearedByLaterPrefix(t *testing.T) {
	// REX, then a segment override after it: REX must not survive since it
	// no longer directly precedes the opcode (spec.md §4.4 step 3).
	code := []byte{0x48, 0x64, 0x01, 0xC0}
	in := &Instruction{DefCode: Mode64}
	s := &stream{code: code, instr: in}
	if st := resolvePrefixes(s); st != StatusSuccess {
		t.Fatalf("resolvePrefixes: %v", st)
	}
	if in.HasRex {
		t.Fatalf("HasRex = true, want false (cleared by trailing FS override)")
	}
	if !in.HasSeg || in.Seg != prefixSegFS {
		t.Fatalf("segment override not recorded: HasSeg=%v Seg=%#x", in.HasSeg, in.Seg)
	}
}

func TestResolvePrefixesSegmentOverrideOnlyFSGSIn64BitMode(t *testing.T) {
	// CS override in 64-bit mode is purely a branch hint, not a segment
	// override (spec.md §4.4).
	code := []byte{0x2E, 0x01, 0xC0}
	in := &Instruction{DefCode: Mode64}
	s := &stream{code: code, instr: in}
	if st := resolvePrefixes(s); st != StatusSuccess {
		t.Fatalf("resolvePrefixes: %v", st)
	}
	if in.HasSeg {
		t.Fatalf("HasSeg = true, want false for CS in 64-bit mode")
	}
	if !in.HasBranchHint || in.BranchHint != prefixSegCS {
		t.Fatalf("branch hint not recorded: HasBranchHint=%v", in.HasBranchHint)
	}
}

func TestFetchVEX2(t *testing.T) {
	// C5 FB 10 ... -> R=0, vvvv=0, L=0, pp=F2 (wire value 3). See walker.go's
	// vexPPIndex doc comment for why pp's wire order isn't {none,66,F2,F3}.
	code := []byte{0xC5, 0xFB, 0x10}
	in := &Instruction{DefCode: Mode64}
	s := &stream{code: code, instr: in}
	if st := fetchVEX2(s); st != StatusSuccess {
		t.Fatalf("fetchVEX2: %v", st)
	}
	if in.Encoding != EncodingVEX || in.VexForm != VexForm2Byte {
		t.Fatalf("encoding = %v/%v", in.Encoding, in.VexForm)
	}
	if in.Exs.R != 0 || in.Exs.V != 0 || in.Exs.L != 0 || in.Exs.P != 3 {
		t.Fatalf("Exs = %+v, want R=0 V=0 L=0 P=3", in.Exs)
	}
	if in.Length != 2 {
		t.Fatalf("length = %d, want 2", in.Length)
	}
}

func TestFetchVEX3RejectsWhenRexAlreadyPresent(t *testing.T) {
	code := []byte{0xC4, 0xE1, 0x79, 0x10}
	in := &Instruction{DefCode: Mode64, HasRex: true}
	s := &stream{code: code, instr: in}
	if st := fetchVEX3(s); st != StatusInvalidPrefixSequence {
		t.Fatalf("status = %v, want StatusInvalidPrefixSequence", st)
	}
}

func TestFetchXOPFallsBackBelowMapThreshold(t *testing.T) {
	code := []byte{0x8F, 0x00, 0x12}
	in := &Instruction{DefCode: Mode32}
	s := &stream{code: code, instr: in}
	if st := fetchXOP(s); st != StatusSuccess {
		t.Fatalf("fetchXOP: %v", st)
	}
	if in.Encoding != EncodingLegacy || in.Length != 0 {
		t.Fatalf("fetchXOP should have left the instruction untouched: encoding=%v length=%d", in.Encoding, in.Length)
	}
}

func TestFetchEVEXRejectsBadReservedBits(t *testing.T) {
	// byte1 bit2 ("zero") set to 1 instead of 0.
	code := []byte{0x62, 0x04, 0x7C, 0x48, 0x58}
	in := &Instruction{DefCode: Mode64}
	s := &stream{code: code, instr: in}
	if st := fetchEVEX(s); st != StatusInvalidEncoding {
		t.Fatalf("status = %v, want StatusInvalidEncoding", st)
	}
}

func TestHasConflictingLegacyPrefix(t *testing.T) {
	if hasConflictingLegacyPrefix(&Instruction{}) {
		t.Fatalf("empty instruction reported a conflict")
	}
	if !hasConflictingLegacyPrefix(&Instruction{HasRex: true}) {
		t.Fatalf("REX should conflict with an extended-encoding prefix")
	}
}
