package decoder

import "testing"

func TestGPRegister(t *testing.T) {
	cases := []struct {
		name       string
		index      uint8
		size       uint8
		rexPresent bool
		want       Register
	}{
		{"AL", 0, 1, false, AL},
		{"AH (no REX)", 4, 1, false, AH},
		{"SPL (REX present)", 4, 1, true, SPL},
		{"AX", 0, 2, false, AX},
		{"EAX", 0, 4, false, EAX},
		{"RAX", 0, 8, false, RAX},
		{"R8 (extended, no REX byte needed for the lookup itself)", 8, 8, true, Register{Name: "r8", Class: RegGPR, Index: 8, Size: 8}},
		{"R9D", 9, 4, true, Register{Name: "r9d", Class: RegGPR, Index: 9, Size: 4}},
		{"R10W", 10, 2, true, Register{Name: "r10w", Class: RegGPR, Index: 10, Size: 2}},
		{"R11B (REX, high index)", 11, 1, true, Register{Name: "r11b", Class: RegGPR, Index: 11, Size: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := GPRegister(c.index, c.size, c.rexPresent)
			if got != c.want {
				t.Errorf("GPRegister(%d, %d, %v) = %+v, want %+v", c.index, c.size, c.rexPresent, got, c.want)
			}
		})
	}
}

func TestVectorRegister(t *testing.T) {
	cases := []struct {
		sizeBytes uint8
		want      RegisterClass
		wantName  string
	}{
		{16, RegVector, "xmm3"},
		{32, RegVector, "ymm3"},
		{64, RegVector, "zmm3"},
	}
	for _, c := range cases {
		got := VectorRegister(3, c.sizeBytes)
		if got.Class != c.want || got.Name != c.wantName {
			t.Errorf("VectorRegister(3, %d) = %+v, want name %q", c.sizeBytes, got, c.wantName)
		}
	}
}

func TestSegmentRegister(t *testing.T) {
	cases := []struct {
		index uint8
		want  Register
	}{
		{0, ES}, {1, CS}, {2, SS}, {3, DS}, {4, FS}, {5, GS},
	}
	for _, c := range cases {
		if got := SegmentRegister(c.index); got != c.want {
			t.Errorf("SegmentRegister(%d) = %+v, want %+v", c.index, got, c.want)
		}
	}
}

func TestExtendedRegisterFiles(t *testing.T) {
	if got := XMMRegister(31); got.Index != 31 || got.Class != RegVector || got.Size != 16 {
		t.Errorf("XMMRegister(31) = %+v", got)
	}
	if got := MaskRegister(7); got.Name != "k7" || got.Class != RegMask {
		t.Errorf("MaskRegister(7) = %+v", got)
	}
	if got := TileRegister(2); got.Name != "tmm2" || got.Class != RegTile {
		t.Errorf("TileRegister(2) = %+v", got)
	}
}
