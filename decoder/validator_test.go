package decoder

import "testing"

func TestValidateLockRules(t *testing.T) {
	t.Run("lockable with memory destination", func(t *testing.T) {
		in := &Instruction{
			HasLock:      true,
			Attributes:   AttrLockable,
			OperandCount: 1,
			Operands:     [MaxOperands]Operand{{Kind: OperandMemory}},
		}
		if st := validate(in); st != StatusSuccess {
			t.Fatalf("validate: %v", st)
		}
	})

	t.Run("lock on a non-lockable instruction", func(t *testing.T) {
		in := &Instruction{HasLock: true, OperandCount: 1, Operands: [MaxOperands]Operand{{Kind: OperandMemory}}}
		if st := validate(in); st != StatusBadLockPrefix {
			t.Fatalf("validate: %v, want StatusBadLockPrefix", st)
		}
	})

	t.Run("lock on a register destination", func(t *testing.T) {
		in := &Instruction{
			HasLock:      true,
			Attributes:   AttrLockable,
			OperandCount: 1,
			Operands:     [MaxOperands]Operand{{Kind: OperandRegister}},
		}
		if st := validate(in); st != StatusBadLockPrefix {
			t.Fatalf("validate: %v, want StatusBadLockPrefix", st)
		}
	})

	t.Run("LOCK MOV-to-CR exception outside 64-bit mode", func(t *testing.T) {
		in := &Instruction{
			HasLock:      true,
			Attributes:   AttrLockable,
			Class:        "MOV",
			DefCode:      Mode32,
			OperandCount: 1,
			Operands:     [MaxOperands]Operand{{Kind: OperandRegister}},
		}
		if st := validate(in); st != StatusSuccess {
			t.Fatalf("validate: %v, want success (AMD LOCK MOV CR8 exception)", st)
		}
	})
}

func TestValidateBad66Prefix(t *testing.T) {
	in := &Instruction{HasOpSize: true, Attributes: AttrNo66}
	if st := validate(in); st != StatusBad66Prefix {
		t.Fatalf("validate: %v, want StatusBad66Prefix", st)
	}
}

func TestValidateVVVVMustBeZero(t *testing.T) {
	in := &Instruction{Attributes: AttrVVVVMustBeZero, Exs: ExtensionRecord{V: 1}}
	if st := validate(in); st != StatusBadVVVV {
		t.Fatalf("validate: %v, want StatusBadVVVV", st)
	}
	in.Exs.V = 0
	if st := validate(in); st != StatusSuccess {
		t.Fatalf("validate: %v, want success with vvvv==0", st)
	}
}

func TestValidateNoL0(t *testing.T) {
	in := &Instruction{Attributes: AttrNoL0, EffVectorLen: 16}
	if st := validate(in); st != StatusInvalidEncoding {
		t.Fatalf("validate: %v, want StatusInvalidEncoding", st)
	}
	in.EffVectorLen = 32
	if st := validate(in); st != StatusSuccess {
		t.Fatalf("validate: %v, want success at 256-bit", st)
	}
}

func TestValidateMaskRequired(t *testing.T) {
	in := &Instruction{Attributes: AttrMandatoryMask, Encoding: EncodingEVEX, Exs: ExtensionRecord{K: 0}}
	if st := validate(in); st != StatusMaskRequired {
		t.Fatalf("validate: %v, want StatusMaskRequired", st)
	}
	in.Exs.K = 1
	if st := validate(in); st != StatusSuccess {
		t.Fatalf("validate: %v, want success with a mask register set", st)
	}
}

func TestValidateDecorators(t *testing.T) {
	t.Run("zeroing on an unsupporting leaf", func(t *testing.T) {
		in := &Instruction{HasZeroing: true}
		if st := validate(in); st != StatusDecoratorNotSupported {
			t.Fatalf("validate: %v, want StatusDecoratorNotSupported", st)
		}
	})

	t.Run("zeroing onto a memory destination", func(t *testing.T) {
		in := &Instruction{
			HasZeroing:   true,
			Attributes:   AttrSupportsZeroing,
			OperandCount: 1,
			Operands:     [MaxOperands]Operand{{Kind: OperandMemory}},
		}
		if st := validate(in); st != StatusDecoratorNotSupported {
			t.Fatalf("validate: %v, want StatusDecoratorNotSupported", st)
		}
	})

	t.Run("broadcast on an unsupporting leaf", func(t *testing.T) {
		in := &Instruction{HasBroadcast: true}
		if st := validate(in); st != StatusDecoratorNotSupported {
			t.Fatalf("validate: %v, want StatusDecoratorNotSupported", st)
		}
	})

	t.Run("SAE supported", func(t *testing.T) {
		in := &Instruction{HasSAE: true, Attributes: AttrSupportsSAEER}
		if st := validate(in); st != StatusSuccess {
			t.Fatalf("validate: %v, want success", st)
		}
	})
}

func TestCheckVSIBUniqueness(t *testing.T) {
	in := &Instruction{
		OperandCount: 2,
		Operands: [MaxOperands]Operand{
			{Kind: OperandRegister, Register: RegisterOperand{Reg: XMMRegister(0)}},
			{Kind: OperandMemory, Memory: MemoryOperand{IsVSIB: true, HasIndex: true, Index: XMMRegister(0)}},
		},
	}
	if st := checkVSIBUniqueness(in); st != StatusInvalidVSIBRegisters {
		t.Fatalf("checkVSIBUniqueness: %v, want StatusInvalidVSIBRegisters", st)
	}
}

func TestCheckTileDistinctness(t *testing.T) {
	distinct := &Instruction{
		OperandCount: 2,
		Operands: [MaxOperands]Operand{
			{Kind: OperandRegister, Register: RegisterOperand{Reg: TileRegister(0)}},
			{Kind: OperandRegister, Register: RegisterOperand{Reg: TileRegister(1)}},
		},
	}
	if st := checkTileDistinctness(distinct); st != StatusSuccess {
		t.Fatalf("checkTileDistinctness: %v, want success", st)
	}

	clashing := &Instruction{
		OperandCount: 2,
		Operands: [MaxOperands]Operand{
			{Kind: OperandRegister, Register: RegisterOperand{Reg: TileRegister(2)}},
			{Kind: OperandRegister, Register: RegisterOperand{Reg: TileRegister(2)}},
		},
	}
	if st := checkTileDistinctness(clashing); st != StatusInvalidRegisterInInstruction {
		t.Fatalf("checkTileDistinctness: %v, want StatusInvalidRegisterInInstruction", st)
	}
}
