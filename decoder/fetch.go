package decoder

// stream is the small cursor the fetchers and the table walker share: a
// read-only byte slice plus the instruction-length counter that every
// successful fetch advances. It exists purely to keep the 15-byte cap and
// bounds checks in one place (spec.md §4.3); it carries no allocation and
// is never retained beyond a single decode call.
type stream struct {
	code   []byte
	instr  *Instruction
}

// need reports whether n more bytes are available starting at offset.
func (s *stream) need(offset uint8, n uint8) bool {
	return int(offset)+int(n) <= len(s.code)
}

// grow advances the instruction length by n, failing if this would exceed
// MaxInstructionLength (spec.md §3.4 "length <= 15").
func (s *stream) grow(n uint8) Status {
	if int(s.instr.Length)+int(n) > MaxInstructionLength {
		return StatusInstructionTooLong
	}
	s.instr.Length += n
	return StatusSuccess
}

func (s *stream) fetchByte(offset uint8) (byte, Status) {
	if !s.need(offset, 1) {
		return 0, StatusBufferTooSmall
	}
	return s.code[offset], StatusSuccess
}

func (s *stream) fetchWord(offset uint8) (uint16, Status) {
	if !s.need(offset, 2) {
		return 0, StatusBufferTooSmall
	}
	return uint16(s.code[offset]) | uint16(s.code[offset+1])<<8, StatusSuccess
}

func (s *stream) fetchDword(offset uint8) (uint32, Status) {
	if !s.need(offset, 4) {
		return 0, StatusBufferTooSmall
	}
	v := uint32(s.code[offset]) | uint32(s.code[offset+1])<<8 |
		uint32(s.code[offset+2])<<16 | uint32(s.code[offset+3])<<24
	return v, StatusSuccess
}

func (s *stream) fetchQword(offset uint8) (uint64, Status) {
	if !s.need(offset, 8) {
		return 0, StatusBufferTooSmall
	}
	lo, _ := s.fetchDword(offset)
	hi, _ := s.fetchDword(offset + 4)
	return uint64(lo) | uint64(hi)<<32, StatusSuccess
}

// fetchData reads n (1, 2, 4 or 8) little-endian bytes starting at offset,
// zero-extended into a uint64. Used for displacement/immediate/moffset
// fetches that share one variable-width reader (mirrors NdFetchData).
func (s *stream) fetchData(offset uint8, n uint8) (uint64, Status) {
	switch n {
	case 1:
		b, st := s.fetchByte(offset)
		return uint64(b), st
	case 2:
		w, st := s.fetchWord(offset)
		return uint64(w), st
	case 4:
		d, st := s.fetchDword(offset)
		return uint64(d), st
	case 8:
		q, st := s.fetchQword(offset)
		return q, st
	default:
		return 0, StatusInternalError
	}
}

// dispSizeMap32 indexes [mod][rm-or-sib.base] -> displacement byte length
// for 32/64-bit addressing (spec.md §4.3).
var dispSizeMap32 = [4][8]uint8{
	{0, 0, 0, 0, 0, 4, 0, 0}, // mod == 0: disp32 only when rm/base == 5 (no-base SIB or RIP-relative)
	{1, 1, 1, 1, 1, 1, 1, 1}, // mod == 1: disp8
	{4, 4, 4, 4, 4, 4, 4, 4}, // mod == 2: disp32
	{0, 0, 0, 0, 0, 0, 0, 0}, // mod == 3: register direct, no displacement
}

// dispSizeMap16 indexes [mod][rm] -> displacement byte length for 16-bit
// addressing (spec.md §4.3, §4.7 "16-bit addressing" table).
var dispSizeMap16 = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 2, 0}, // mod == 0: disp16 only for rm == 6 (direct)
	{1, 1, 1, 1, 1, 1, 1, 1}, // mod == 1: disp8
	{2, 2, 2, 2, 2, 2, 2, 2}, // mod == 2: disp16
	{0, 0, 0, 0, 0, 0, 0, 0}, // mod == 3: register direct
}
