package decoder

// modrmFields splits a ModR/M byte into its mod/reg/rm fields.
type modrmFields struct {
	Mod uint8
	Reg uint8
	RM  uint8
}

func splitModRM(b byte) modrmFields {
	return modrmFields{
		Mod: (b >> 6) & 0x3,
		Reg: (b >> 3) & 0x7,
		RM:  b & 0x7,
	}
}

// sibFields splits a SIB byte into its scale/index/base fields.
type sibFields struct {
	Scale uint8
	Index uint8
	Base  uint8
}

func splitSIB(b byte) sibFields {
	return sibFields{
		Scale: (b >> 6) & 0x3,
		Index: (b >> 3) & 0x7,
		Base:  b & 0x7,
	}
}

// fetchModRM fetches the ModR/M byte only (used for the "mod forced to
// register" leaves of spec.md §4.6, which skip SIB/displacement).
func fetchModRM(s *stream) Status {
	in := s.instr
	if in.HasModRM {
		return StatusSuccess
	}
	b, st := s.fetchByte(in.Length)
	if st != StatusSuccess {
		return st
	}
	in.HasModRM = true
	in.ModRM = b
	in.ModRMOffset = in.Length
	return s.grow(1)
}

// fetchModRMAndSIB fetches ModR/M (if not already fetched by the table
// walker's lazy descent) and, when addressing calls for it, the SIB byte
// that follows it (spec.md §4.3 NdFetchModrmAndSib). Both fetches are
// idempotent so the leaf-resolution step can call this unconditionally
// after the walker has already consumed ModR/M on its own.
func fetchModRMAndSIB(s *stream) Status {
	in := s.instr
	if st := fetchModRM(s); st != StatusSuccess {
		return st
	}
	if in.HasSIB {
		return StatusSuccess
	}
	mrm := splitModRM(in.ModRM)
	if mrm.RM == 4 && mrm.Mod != 3 && in.EffAddrSize != Mode16 {
		b, st := s.fetchByte(in.Length)
		if st != StatusSuccess {
			return st
		}
		in.HasSIB = true
		in.SIB = b
		if st := s.grow(1); st != StatusSuccess {
			return st
		}
	}
	return StatusSuccess
}

// fetchDisplacement fetches the ModR/M+SIB-implied displacement, if any
// (spec.md §4.3 NdFetchDisplacement).
func fetchDisplacement(s *stream) Status {
	in := s.instr
	if in.HasDisp {
		return StatusSuccess
	}
	mrm := splitModRM(in.ModRM)

	var dispSize uint8
	if in.EffAddrSize == Mode16 {
		dispSize = dispSizeMap16[mrm.Mod][mrm.RM]
	} else {
		idx := mrm.RM
		if in.HasSIB {
			idx = splitSIB(in.SIB).Base
		}
		dispSize = dispSizeMap32[mrm.Mod][idx]
	}
	if dispSize == 0 {
		return StatusSuccess
	}

	raw, st := s.fetchData(in.Length, dispSize)
	if st != StatusSuccess {
		return st
	}

	in.HasDisp = true
	in.DispOffset = in.Length
	in.DispLength = dispSize
	in.Disp = int32(raw)
	switch dispSize {
	case 1:
		in.Disp = int32(int8(raw))
	case 2:
		in.Disp = int32(int16(raw))
	}
	in.SignDisp = in.Disp < 0
	return s.grow(dispSize)
}
