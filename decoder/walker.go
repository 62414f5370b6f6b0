package decoder

import "github.com/keurnel/decoder/decoder/tables"

// walk drives the forest traversal of spec.md §4.2/§4.6: starting from the
// root table selected by the already-resolved encoding family, it descends
// node by node, lazily fetching whatever bytes each tag's selector needs,
// until it reaches a tables.Leaf or fails.
func walk(s *stream) Status {
	in := s.instr

	var root *tables.Node
	switch in.Encoding {
	case EncodingXOP:
		root = tables.Forest.Xop
	case EncodingVEX:
		root = tables.Forest.Vex
	case EncodingEVEX:
		root = tables.Forest.Evex
	default:
		root = tables.Forest.Legacy
	}

	node := root
	for {
		if node == nil {
			return StatusInvalidEncoding
		}
		if node.Tag == tables.TagLeaf {
			return land(s, node.Leaf)
		}

		idx, st := selectChild(s, node.Tag)
		if st != StatusSuccess {
			return st
		}
		node = node.Child(idx)
	}
}

// selectChild computes the child index for the given tag, performing any
// lazy fetch the tag requires (spec.md §4.2 "possibly requiring a lazy
// fetch"). A negative index with StatusSuccess means "use the node's
// Default slot directly" (used by tags whose selector has no natural array
// index, like Vendor/Feature fallbacks).
func selectChild(s *stream, tag tables.Tag) (int, Status) {
	in := s.instr

	switch tag {
	case tables.TagOpcode:
		b, st := s.fetchByte(in.Length)
		if st != StatusSuccess {
			return 0, st
		}
		if in.OpcodeCount < uint8(len(in.OpcodeBytes)) {
			in.OpcodeBytes[in.OpcodeCount] = b
		}
		in.OpcodeCount++
		in.PrimaryOpcode = b
		if st := s.grow(1); st != StatusSuccess {
			return 0, st
		}
		return int(b), StatusSuccess

	case tables.TagOpcode3DNow:
		// The 3DNow! opcode byte follows ModR/M, SIB and displacement, so
		// those are fetched first; the later fetches in land() find them
		// already present.
		if st := fetchModRMAndSIB(s); st != StatusSuccess {
			return 0, st
		}
		if splitModRM(in.ModRM).Mod != 3 {
			if st := fetchDisplacement(s); st != StatusSuccess {
				return 0, st
			}
		}
		b, st := s.fetchByte(in.Length)
		if st != StatusSuccess {
			return 0, st
		}
		in.PrimaryOpcode = b
		if st := s.grow(1); st != StatusSuccess {
			return 0, st
		}
		return int(b), StatusSuccess

	case tables.TagModRMMod:
		if st := fetchModRM(s); st != StatusSuccess {
			return 0, st
		}
		if splitModRM(in.ModRM).Mod == 3 {
			return 1, StatusSuccess
		}
		return 0, StatusSuccess

	case tables.TagModRMReg:
		if st := fetchModRM(s); st != StatusSuccess {
			return 0, st
		}
		return int(splitModRM(in.ModRM).Reg), StatusSuccess

	case tables.TagModRMRM:
		if st := fetchModRM(s); st != StatusSuccess {
			return 0, st
		}
		return int(splitModRM(in.ModRM).RM), StatusSuccess

	case tables.TagMandatoryPrefix:
		return int(mandatoryPrefixIndex(in)), StatusSuccess

	case tables.TagMode:
		switch in.DefCode {
		case Mode16:
			return 0, StatusSuccess
		case Mode32:
			return 1, StatusSuccess
		default:
			return 2, StatusSuccess
		}

	case tables.TagDataSize:
		switch in.EffOpSize {
		case Mode16:
			return 0, StatusSuccess
		case Mode32:
			return 1, StatusSuccess
		default:
			return 2, StatusSuccess
		}

	case tables.TagAddressSize:
		switch in.EffAddrSize {
		case Mode16:
			return 0, StatusSuccess
		case Mode32:
			return 1, StatusSuccess
		default:
			return 2, StatusSuccess
		}

	case tables.TagAuxiliary:
		switch {
		case in.HasRex && in.Exs.B == 1:
			return int(tables.AuxRexB), StatusSuccess
		case in.HasRex && in.Exs.W == 1:
			return int(tables.AuxRexW), StatusSuccess
		case in.DefCode == Mode64:
			return int(tables.AuxCode64), StatusSuccess
		case in.HasRepRepzXrelease:
			return int(tables.AuxF3Prefix), StatusSuccess
		case in.HasRepRepzXrelease || in.HasRepnzXacquire:
			return int(tables.AuxAnyRep), StatusSuccess
		default:
			return int(tables.AuxNone), StatusSuccess
		}

	case tables.TagVendor:
		return int(in.Vendor), StatusSuccess

	case tables.TagFeature:
		// No concrete feature-gated leaf is authored in this representative
		// table; a real build would index by feature-bit position here.
		// -1 signals "use Default" uniformly until one is added.
		return -1, StatusSuccess

	case tables.TagVexMap:
		return int(in.Exs.M), StatusSuccess

	case tables.TagVexPP:
		return vexPPIndex(in.Exs.P), StatusSuccess

	case tables.TagVexL:
		switch in.EffVectorLen {
		case 16:
			return 0, StatusSuccess
		case 32:
			return 1, StatusSuccess
		default:
			return 2, StatusSuccess
		}

	case tables.TagVexW:
		return int(in.Exs.W), StatusSuccess

	default:
		return 0, StatusInternalError
	}
}

// mandatoryPrefixIndex reports which of {none, 66, F2, F3} this instruction
// carries as a mandatory (opcode-selecting) prefix, for legacy two-/three-
// byte opcode maps. REP/REPNE win over a plain 66 when both are somehow
// present, matching the decision order spec.md §9's first open question
// asks a port to preserve rather than approximate.
func mandatoryPrefixIndex(in *Instruction) int {
	switch {
	case in.HasRepnzXacquire:
		in.HasMandatoryF2 = true
		return int(tables.MPF2)
	case in.HasRepRepzXrelease:
		in.HasMandatoryF3 = true
		return int(tables.MPF3)
	case in.HasOpSize:
		in.HasMandatory66 = true
		return int(tables.MP66)
	default:
		return int(tables.MPNone)
	}
}

// vexPPIndex maps the VEX/XOP/EVEX wire `pp` value (0=none, 1=66, 2=F3,
// 3=F2) onto the vexPPNode child order used throughout package tables
// (none, 66, F2, F3) — the two orderings differ because pp's wire encoding
// is not the ISA's natural {none,66,F2,F3} enumeration order.
func vexPPIndex(pp uint8) int {
	switch pp {
	case 0:
		return int(tables.MPNone)
	case 1:
		return int(tables.MP66)
	case 2:
		return int(tables.MPF3)
	default:
		return int(tables.MPF2)
	}
}
