package decoder

import "testing"

// These cases mirror spec.md §8's worked examples verbatim: each hex string
// is hand-traced against the representative table in decoder/tables before
// being committed here, since nothing in this module is ever run through a
// real assembler or disassembler to cross-check it.
func TestDecodeWorkedExamples(t *testing.T) {
	t.Run("NOP", func(t *testing.T) {
		in := &Instruction{}
		code := []byte{0x90}
		if st := Decode(in, code, Mode64, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Mnemonic != "NOP" || in.Length != 1 {
			t.Fatalf("got mnemonic=%q length=%d", in.Mnemonic, in.Length)
		}
	})

	t.Run("MOV RBX, RAX (REX.W)", func(t *testing.T) {
		in := &Instruction{}
		code := []byte{0x48, 0x89, 0xC3}
		if st := Decode(in, code, Mode64, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Mnemonic != "MOV" || in.Length != 3 {
			t.Fatalf("got mnemonic=%q length=%d", in.Mnemonic, in.Length)
		}
		if in.OperandCount != 2 {
			t.Fatalf("operand count = %d, want 2", in.OperandCount)
		}
		dst, src := in.Operands[0], in.Operands[1]
		if dst.Kind != OperandRegister || dst.Register.Reg != RBX || dst.Size != 8 {
			t.Fatalf("dst = %+v, want RBX/8", dst)
		}
		if !dst.Access.IsWrite() {
			t.Fatalf("dst not marked write")
		}
		if src.Kind != OperandRegister || src.Register.Reg != RAX || src.Size != 8 {
			t.Fatalf("src = %+v, want RAX/8", src)
		}
		if !src.Access.IsRead() {
			t.Fatalf("src not marked read")
		}
	})

	t.Run("MOV EAX, [0x12345678] (67-prefixed 32-bit addressing in 64-bit mode)", func(t *testing.T) {
		in := &Instruction{}
		code := []byte{0x67, 0x8B, 0x04, 0x25, 0x78, 0x56, 0x34, 0x12}
		if st := Decode(in, code, Mode64, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Length != 8 {
			t.Fatalf("length = %d, want 8", in.Length)
		}
		if in.EffAddrSize != Mode32 {
			t.Fatalf("EffAddrSize = %v, want Mode32", in.EffAddrSize)
		}
		dst, src := in.Operands[0], in.Operands[1]
		if dst.Kind != OperandRegister || dst.Register.Reg != EAX {
			t.Fatalf("dst = %+v, want EAX", dst)
		}
		if src.Kind != OperandMemory {
			t.Fatalf("src kind = %v, want memory", src.Kind)
		}
		mem := src.Memory
		if mem.HasBase || mem.HasIndex {
			t.Fatalf("mem = %+v, want no base, no index", mem)
		}
		if !mem.HasDisp || mem.Disp != 0x12345678 || mem.DispSize != 4 {
			t.Fatalf("mem disp = %#x/%d, want 0x12345678/4", mem.Disp, mem.DispSize)
		}
		if mem.Segment != DS {
			t.Fatalf("mem segment = %v, want DS", mem.Segment)
		}
	})

	t.Run("LOCK ADD [RBP+0], RCX", func(t *testing.T) {
		in := &Instruction{}
		code := []byte{0xF0, 0x48, 0x01, 0x4D, 0x00}
		if st := Decode(in, code, Mode64, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Length != 5 {
			t.Fatalf("length = %d, want 5", in.Length)
		}
		if !in.HasLock {
			t.Fatalf("HasLock = false, want true")
		}
		dst, src := in.Operands[0], in.Operands[1]
		if dst.Kind != OperandMemory {
			t.Fatalf("dst kind = %v, want memory", dst.Kind)
		}
		if dst.Memory.Base != RBP || dst.Memory.Segment != SS {
			t.Fatalf("dst memory = %+v, want base RBP, segment SS", dst.Memory)
		}
		if !dst.Memory.HasDisp || dst.Memory.Disp != 0 {
			t.Fatalf("dst disp = %+v, want 0", dst.Memory)
		}
		if src.Kind != OperandRegister || src.Register.Reg != RCX {
			t.Fatalf("src = %+v, want RCX", src)
		}
	})

	t.Run("VMOVSD XMM0, [RIP+0] (2-byte VEX, pp=F2)", func(t *testing.T) {
		in := &Instruction{}
		code := []byte{0xC5, 0xFB, 0x10, 0x05, 0x00, 0x00, 0x00, 0x00}
		if st := Decode(in, code, Mode64, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Length != 8 {
			t.Fatalf("length = %d, want 8", in.Length)
		}
		if in.Mnemonic != "VMOVSD" {
			t.Fatalf("mnemonic = %q, want VMOVSD", in.Mnemonic)
		}
		if in.Encoding != EncodingVEX || in.VexForm != VexForm2Byte {
			t.Fatalf("encoding = %v/%v, want VEX/2-byte", in.Encoding, in.VexForm)
		}
		dst, src := in.Operands[0], in.Operands[1]
		if dst.Kind != OperandRegister || dst.Register.Reg.Class != RegVector || dst.Register.Reg.Index != 0 {
			t.Fatalf("dst = %+v, want xmm0", dst)
		}
		if src.Kind != OperandMemory || !src.Memory.IsRipRel {
			t.Fatalf("src = %+v, want RIP-relative memory", src)
		}
		if !in.IsRipRelative {
			t.Fatalf("IsRipRelative = false, want true")
		}
	})

	t.Run("VADDPS ZMM0, ZMM0, ZMM1 (EVEX, L'L=512)", func(t *testing.T) {
		in := &Instruction{}
		code := []byte{0x62, 0xF1, 0x7C, 0x48, 0x58, 0xC1}
		if st := Decode(in, code, Mode64, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Length != 6 {
			t.Fatalf("length = %d, want 6", in.Length)
		}
		if in.Mnemonic != "VADDPS" || in.Encoding != EncodingEVEX {
			t.Fatalf("mnemonic/encoding = %q/%v", in.Mnemonic, in.Encoding)
		}
		if in.EffVectorLen != 64 {
			t.Fatalf("EffVectorLen = %d, want 64", in.EffVectorLen)
		}
		if in.OperandCount != 3 {
			t.Fatalf("operand count = %d, want 3", in.OperandCount)
		}
		for i, want := range []uint8{0, 0, 1} {
			op := in.Operands[i]
			if op.Kind != OperandRegister || op.Register.Reg.Class != RegVector || op.Register.Reg.Index != want {
				t.Fatalf("operand[%d] = %+v, want zmm%d", i, op, want)
			}
		}
		if in.HasMask || in.HasZeroing || in.HasBroadcast || in.HasSAE {
			t.Fatalf("unexpected decorator flags on plain VADDPS: %+v", in)
		}
	})

	t.Run("non-64-bit mode 8F 00 12 falls back to legacy POP", func(t *testing.T) {
		// The second byte's low 5 bits (here 0, the ModR/M byte of a POP
		// [EAX] form) are < 8, so fetchXOP bails out and the walker lands on
		// the legacy opcode-0x8F POP group instead (spec.md §4.4 step 4).
		in := &Instruction{}
		code := []byte{0x8F, 0x00, 0x12}
		if st := Decode(in, code, Mode32, Mode32); st != StatusSuccess {
			t.Fatalf("decode: %v", st)
		}
		if in.Encoding != EncodingLegacy {
			t.Fatalf("encoding = %v, want legacy", in.Encoding)
		}
		if in.Mnemonic != "POP" || in.Length != 2 {
			t.Fatalf("mnemonic/length = %q/%d, want POP/2", in.Mnemonic, in.Length)
		}
	})

	t.Run("16 bytes of 0x26 exceeds the instruction-length cap", func(t *testing.T) {
		in := &Instruction{}
		code := make([]byte, 16)
		for i := range code {
			code[i] = 0x26
		}
		if st := Decode(in, code, Mode64, Mode32); st != StatusInstructionTooLong {
			t.Fatalf("status = %v, want StatusInstructionTooLong", st)
		}
	})
}

func TestDecodeRejectsInvalidParameters(t *testing.T) {
	var in Instruction
	if st := Decode(&in, nil, Mode64, Mode32); st != StatusInvalidParameter {
		t.Fatalf("nil code: status = %v", st)
	}
	if st := Decode(nil, []byte{0x90}, Mode64, Mode32); st != StatusInvalidParameter {
		t.Fatalf("nil instruction: status = %v", st)
	}
	if st := Decode(&in, []byte{0x90}, Mode(7), Mode32); st != StatusInvalidParameter {
		t.Fatalf("bad mode: status = %v", st)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	var in Instruction
	// 0x48 (REX.W) with nothing following: the opcode fetch runs out of bytes.
	if st := Decode(&in, []byte{0x48}, Mode64, Mode32); st != StatusBufferTooSmall {
		t.Fatalf("status = %v, want StatusBufferTooSmall", st)
	}
}

func TestIsRipRelative(t *testing.T) {
	var in Instruction
	code := []byte{0xC5, 0xFB, 0x10, 0x05, 0x00, 0x00, 0x00, 0x00}
	if st := Decode(&in, code, Mode64, Mode32); st != StatusSuccess {
		t.Fatalf("decode: %v", st)
	}
	if !IsRipRelative(&in) {
		t.Fatalf("IsRipRelative = false, want true")
	}
}
