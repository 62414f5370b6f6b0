package decoder

// resolvePrefixes runs the prefix state machine of spec.md §4.4: it
// consumes the legacy prefix run, detects REX, and then tries to match one
// of the extended encoding prefixes (XOP/VEX2/VEX3/EVEX). On return,
// in.OpcodeOffset is the offset of the first opcode byte.
func resolvePrefixes(s *stream) Status {
	in := s.instr

	for {
		b, st := s.fetchByte(in.Length)
		if st != StatusSuccess {
			return st
		}

		kind := prefixMap[b]
		if kind == prefixKindNone {
			break
		}

		more := false
		if kind == prefixKindStandard {
			switch b {
			case prefixLock:
				in.HasLock = true
				more = true
			case prefixRep:
				in.HasRepRepzXrelease = true
				more = true
			case prefixRepNE:
				in.HasRepnzXacquire = true
				more = true
			case prefixSegCS, prefixSegSS, prefixSegDS, prefixSegES, prefixSegFS, prefixSegGS:
				if in.DefCode == Mode64 {
					if b == prefixSegFS || b == prefixSegGS {
						in.Seg = b
						in.HasSeg = true
					}
				} else {
					in.Seg = b
					in.HasSeg = true
				}
				if b == prefixSegCS || b == prefixSegDS {
					in.BranchHint = b
					in.HasBranchHint = true
				}
				more = true
			case prefixOperandSize:
				in.HasOpSize = true
				more = true
			case prefixAddressSize:
				in.HasAddrSize = true
				more = true
			}
		}

		// REX must directly precede the opcode: any further prefix after it
		// clears it (spec.md §4.4 step 3).
		if more && in.HasRex {
			in.HasRex = false
			in.RexByte = 0
			in.Exs.W, in.Exs.R, in.Exs.X, in.Exs.B = 0, 0, 0, 0
		}

		if in.DefCode == Mode64 && kind == prefixKindRex {
			in.HasRex = true
			in.RexByte = b
			rex := decodeRex(b)
			in.Exs.W, in.Exs.R, in.Exs.X, in.Exs.B = rex.W, rex.R, rex.X, rex.B
			more = true
		}

		if !more {
			break
		}
		if st := s.grow(1); st != StatusSuccess {
			return st
		}
	}

	// At least one byte remains for the opcode or an extended prefix.
	b, st := s.fetchByte(in.Length)
	if st != StatusSuccess {
		return st
	}

	if prefixMap[b] == prefixKindExtended {
		var fst Status
		switch b {
		case prefixXOP:
			fst = fetchXOP(s)
		case prefixVEX2:
			fst = fetchVEX2(s)
		case prefixVEX3:
			fst = fetchVEX3(s)
		case prefixEVEX:
			fst = fetchEVEX(s)
		}
		if fst != StatusSuccess {
			return fst
		}
	}

	in.OpcodeOffset = in.Length
	return StatusSuccess
}

func hasConflictingLegacyPrefix(in *Instruction) bool {
	return in.HasOpSize || in.HasRepnzXacquire || in.HasRepRepzXrelease || in.HasRex
}

// fetchXOP parses the AMD XOP prefix (0x8F <byte1> <byte2>), spec.md §4.4
// step 4. A second byte whose low 5 bits are < 8 means this was not XOP at
// all but the legacy POP r/m encoding that happens to share 0x8F.
func fetchXOP(s *stream) Status {
	in := s.instr
	off := in.Length
	if !s.need(off, 2) {
		return StatusBufferTooSmall
	}
	if s.code[off+1]&0x1F < 8 {
		return StatusSuccess
	}
	if !s.need(off, 3) {
		return StatusBufferTooSmall
	}
	if hasConflictingLegacyPrefix(in) {
		return StatusInvalidPrefixSequence
	}

	b1, b2 := s.code[off+1], s.code[off+2]
	in.Encoding = EncodingXOP

	in.Exs.W = (b2 >> 7) & 1
	in.Exs.R = (^b1 >> 7) & 1
	in.Exs.X = (^b1 >> 6) & 1
	in.Exs.B = (^b1 >> 5) & 1
	in.Exs.M = b1 & 0x1F
	in.Exs.V = (^b2 >> 3) & 0xF
	in.Exs.L = (b2 >> 2) & 1
	in.Exs.P = b2 & 0x3

	if in.DefCode != Mode64 {
		if in.Exs.R|in.Exs.X == 1 {
			return StatusInvalidEncodingInMode
		}
		if in.Exs.V&0x8 == 0x8 {
			return StatusInvalidEncodingInMode
		}
		in.Exs.B = 0
	}

	return s.grow(3)
}

// fetchVEX2 parses the 2-byte VEX prefix (0xC5 <byte1>), spec.md §4.4.
func fetchVEX2(s *stream) Status {
	in := s.instr
	off := in.Length
	if !s.need(off, 2) {
		return StatusBufferTooSmall
	}
	// In non-64-bit mode, top two bits of byte1 != 11 means this is really
	// the LDS opcode 0xC5 with a memory ModR/M, not VEX (spec.md §4.4 step 4).
	if in.DefCode != Mode64 && s.code[off+1]&0xC0 != 0xC0 {
		return StatusSuccess
	}
	if hasConflictingLegacyPrefix(in) || in.HasLock {
		return StatusInvalidPrefixSequence
	}

	b1 := s.code[off+1]
	in.Encoding = EncodingVEX
	in.VexForm = VexForm2Byte

	in.Exs.M = 1 // VEX2 always implies the 0F opcode map.
	in.Exs.R = (^b1 >> 7) & 1
	in.Exs.V = (^b1 >> 3) & 0xF
	in.Exs.L = (b1 >> 2) & 1
	in.Exs.P = b1 & 0x3

	return s.grow(2)
}

// fetchVEX3 parses the 3-byte VEX prefix (0xC4 <byte1> <byte2>), spec.md §4.4.
func fetchVEX3(s *stream) Status {
	in := s.instr
	off := in.Length
	if !s.need(off, 2) {
		return StatusBufferTooSmall
	}
	if in.DefCode != Mode64 && s.code[off+1]&0xC0 != 0xC0 {
		return StatusSuccess
	}
	if !s.need(off, 3) {
		return StatusBufferTooSmall
	}
	if hasConflictingLegacyPrefix(in) || in.HasLock {
		return StatusInvalidPrefixSequence
	}

	b1, b2 := s.code[off+1], s.code[off+2]
	in.Encoding = EncodingVEX
	in.VexForm = VexForm3Byte

	in.Exs.R = (^b1 >> 7) & 1
	in.Exs.X = (^b1 >> 6) & 1
	in.Exs.B = (^b1 >> 5) & 1
	in.Exs.M = b1 & 0x1F
	in.Exs.W = (b2 >> 7) & 1
	in.Exs.V = (^b2 >> 3) & 0xF
	in.Exs.L = (b2 >> 2) & 1
	in.Exs.P = b2 & 0x3

	if in.DefCode != Mode64 {
		in.Exs.V &= 7
		in.Exs.B = 0
	}

	return s.grow(3)
}

// fetchEVEX parses the 4-byte EVEX prefix (0x62 <byte1> <byte2> <byte3>),
// spec.md §4.4 step 4 and §3.4's EVEX reserved-bit invariant.
func fetchEVEX(s *stream) Status {
	in := s.instr
	off := in.Length
	if !s.need(off, 2) {
		return StatusBufferTooSmall
	}
	if in.DefCode != Mode64 && s.code[off+1]&0xC0 != 0xC0 {
		// BOUND's EVEX-shaped twin in non-64-bit mode: not EVEX.
		return StatusSuccess
	}
	if !s.need(off, 4) {
		return StatusBufferTooSmall
	}
	if in.HasOpSize || in.HasRepnzXacquire || in.HasRepRepzXrelease || in.HasRex {
		return StatusInvalidPrefixSequence
	}

	b1, b2, b3 := s.code[off+1], s.code[off+2], s.code[off+3]
	in.Encoding = EncodingEVEX

	zero := (b1 >> 2) & 1
	one := (b2 >> 2) & 1
	m := b1 & 0x7 // 3-bit map in the baseline EVEX spec this port targets

	if zero != 0 || one != 1 || m == 0 {
		return StatusInvalidEncoding
	}

	in.Exs.R = (^b1 >> 7) & 1
	in.Exs.X = (^b1 >> 6) & 1
	in.Exs.B = (^b1 >> 5) & 1
	in.Exs.Rp = (^b1 >> 4) & 1
	in.Exs.M = m
	in.Exs.W = (b2 >> 7) & 1
	in.Exs.V = (^b2 >> 3) & 0xF
	in.Exs.P = b2 & 0x3
	in.Exs.Z = (b3>>7)&1 != 0
	in.Exs.L = (b3 >> 5) & 0x3
	in.Exs.BM = (b3>>4)&1 != 0
	in.Exs.Vp = (^b3 >> 3) & 1
	in.Exs.K = b3 & 0x7

	if in.DefCode != Mode64 {
		in.Exs.R = 0
		in.Exs.X = 0
		in.Exs.B = 0
		in.Exs.Rp = 0
		in.Exs.V &= 0x7
		in.Exs.Vp = 0
	}

	return s.grow(4)
}
