// Package format is the text formatter spec.md §1 calls "a companion text
// formatter [that] renders the structured form into a human-readable
// assembly string" and whose "sole dependency on the core is the decoded
// instruction record" (spec.md §1, §6.1 Text). It never reaches back into
// decoder's unexported helpers: it is a pure consumer of the exported
// decoder.Instruction shape, mirroring how the teacher's own CLI layer
// only ever calls into its assembler package's exported surface.
package format

import (
	"fmt"
	"strings"

	"github.com/keurnel/decoder/decoder"
)

// Text renders in as an Intel-syntax assembly line ("MNEMONIC op1, op2, ...")
// into buf, returning the number of bytes written (spec.md §6.1
// "Text(record, rip, buffer, buffer-size) -> status"). rip is the address
// the instruction was fetched from, used only to resolve RIP-relative memory
// operands to an absolute target in a trailing comment.
func Text(in *decoder.Instruction, rip uint64, buf []byte) (int, decoder.Status) {
	if in == nil || buf == nil {
		return 0, decoder.StatusInvalidParameter
	}

	var b strings.Builder
	b.WriteString(mnemonic(in))

	for i := uint8(0); i < in.OperandCount; i++ {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(operandText(in, &in.Operands[i]))
	}

	if in.IsRipRelative {
		if target, ok := ripTarget(in, rip); ok {
			fmt.Fprintf(&b, " ; 0x%x", target)
		}
	}

	s := b.String()
	if len(s) > len(buf) {
		return 0, decoder.StatusOperandTooLarge
	}
	n := copy(buf, s)
	return n, decoder.StatusSuccess
}

// mnemonic prepends the handful of prefix spellings Intel syntax places
// ahead of the mnemonic itself.
func mnemonic(in *decoder.Instruction) string {
	var b strings.Builder
	if in.HasLock {
		b.WriteString("lock ")
	}
	if in.HasRepRepzXrelease && !in.HasMandatoryF3 {
		b.WriteString("rep ")
	}
	if in.HasRepnzXacquire && !in.HasMandatoryF2 {
		b.WriteString("repne ")
	}
	b.WriteString(strings.ToLower(in.Mnemonic))
	return b.String()
}

func operandText(in *decoder.Instruction, op *decoder.Operand) string {
	switch op.Kind {
	case decoder.OperandRegister:
		return registerText(op)
	case decoder.OperandMemory:
		return memoryText(op)
	case decoder.OperandImmediate:
		return fmt.Sprintf("0x%x", op.Imm)
	case decoder.OperandRelativeOffset:
		return fmt.Sprintf("%+d", op.RelOffset)
	case decoder.OperandFarAddress:
		return fmt.Sprintf("0x%x:0x%x", op.Far.Segment, op.Far.Offset)
	case decoder.OperandConstant:
		return fmt.Sprintf("%d", op.Imm)
	default:
		return ""
	}
}

func registerText(op *decoder.Operand) string {
	name := op.Register.Reg.Name
	if op.Decorator.MaskRegister != 0 {
		name = fmt.Sprintf("%s{k%d}", name, op.Decorator.MaskRegister)
	}
	if op.Decorator.Zeroing {
		name += "{z}"
	}
	if op.Decorator.SAE {
		name += "{sae}"
	}
	if op.Decorator.EmbeddedRounding {
		name += fmt.Sprintf("{rn-sae-rounding-%d}", op.Decorator.RoundingMode)
	}
	return name
}

// memoryText renders a memory operand as size-ptr seg:[base+index*scale+disp].
func memoryText(op *decoder.Operand) string {
	mem := op.Memory
	var b strings.Builder

	b.WriteString(sizeKeyword(op.Size))
	b.WriteString(" ptr ")

	if mem.HasSegment {
		fmt.Fprintf(&b, "%s:", mem.Segment.Name)
	}
	b.WriteByte('[')

	switch {
	case mem.IsRipRel:
		b.WriteString("rip")
	case mem.IsDirect:
		fmt.Fprintf(&b, "0x%x", uint32(mem.Disp))
		b.WriteByte(']')
		if mem.IsVSIB {
			b.WriteString(decorateVSIB(mem))
		}
		return b.String()
	default:
		wrote := false
		if mem.HasBase {
			b.WriteString(mem.Base.Name)
			wrote = true
		}
		if mem.HasIndex {
			if wrote {
				b.WriteByte('+')
			}
			fmt.Fprintf(&b, "%s*%d", mem.Index.Name, mem.Scale)
			wrote = true
		}
		if mem.HasDisp && (mem.Disp != 0 || !wrote) {
			if wrote && mem.Disp >= 0 {
				b.WriteByte('+')
			}
			fmt.Fprintf(&b, "0x%x", mem.Disp)
		}
	}
	b.WriteByte(']')
	if mem.IsVSIB {
		b.WriteString(decorateVSIB(mem))
	}
	return b.String()
}

func decorateVSIB(mem decoder.MemoryOperand) string {
	return fmt.Sprintf(" {vsib:%dx%d}", mem.VSIBElemSize, mem.VSIBCount)
}

func sizeKeyword(size uint8) string {
	switch size {
	case 1:
		return "byte"
	case 2:
		return "word"
	case 4:
		return "dword"
	case 8:
		return "qword"
	case 16:
		return "xmmword"
	case 32:
		return "ymmword"
	case 64:
		return "zmmword"
	default:
		return fmt.Sprintf("size%d", size)
	}
}

// ripTarget resolves a RIP-relative memory operand's absolute target, given
// the address the instruction itself was fetched from.
func ripTarget(in *decoder.Instruction, rip uint64) (uint64, bool) {
	for i := uint8(0); i < in.OperandCount; i++ {
		op := &in.Operands[i]
		if op.Kind == decoder.OperandMemory && op.Memory.IsRipRel {
			return rip + uint64(in.Length) + uint64(op.Memory.Disp), true
		}
	}
	return 0, false
}
