package tables

import "testing"

func TestNodeChildFallsBackToDefault(t *testing.T) {
	fallback := leafNode(Leaf{Mnemonic: "UD"})
	n := &Node{
		Tag:      TagModRMReg,
		Children: []*Node{nil, leafNode(Leaf{Mnemonic: "REAL"})},
		Default:  fallback,
	}

	if got := n.Child(0); got != fallback {
		t.Errorf("Child(0) = %+v, want the default fallback", got)
	}
	if got := n.Child(1); got == nil || got.Leaf.Mnemonic != "REAL" {
		t.Errorf("Child(1) = %+v, want the REAL leaf", got)
	}
	if got := n.Child(99); got != fallback {
		t.Errorf("Child(99) (out of range) = %+v, want the default fallback", got)
	}
}

func TestOpcodeNodeSparsePopulation(t *testing.T) {
	n := opcodeNode(map[byte]*Node{0x90: leafNode(Leaf{Mnemonic: "NOP"})})
	if n.Tag != TagOpcode {
		t.Fatalf("Tag = %v, want TagOpcode", n.Tag)
	}
	if len(n.Children) != 256 {
		t.Fatalf("len(Children) = %d, want 256", len(n.Children))
	}
	if got := n.Child(0x90); got == nil || got.Leaf.Mnemonic != "NOP" {
		t.Errorf("Child(0x90) = %+v, want NOP", got)
	}
	if got := n.Child(0x91); got != nil {
		t.Errorf("Child(0x91) = %+v, want nil (no default set)", got)
	}
}

func TestVexPPNodeOrder(t *testing.T) {
	none := leafNode(Leaf{Mnemonic: "NONE"})
	p66 := leafNode(Leaf{Mnemonic: "P66"})
	pf2 := leafNode(Leaf{Mnemonic: "PF2"})
	pf3 := leafNode(Leaf{Mnemonic: "PF3"})
	n := vexPPNode(none, p66, pf2, pf3)

	cases := []struct {
		idx  MandatoryPrefix
		want string
	}{
		{MPNone, "NONE"},
		{MP66, "P66"},
		{MPF2, "PF2"},
		{MPF3, "PF3"},
	}
	for _, c := range cases {
		if got := n.Child(int(c.idx)); got == nil || got.Leaf.Mnemonic != c.want {
			t.Errorf("Child(%d) = %+v, want %s", c.idx, got, c.want)
		}
	}
}

func TestLeafValidInMode(t *testing.T) {
	unrestricted := Leaf{}
	for bit := uint8(0); bit < 3; bit++ {
		if !unrestricted.ValidInMode(bit) {
			t.Errorf("zero-value ValidModes should be valid in every mode, bit %d failed", bit)
		}
	}

	only64 := Leaf{ValidModes: ModeBit64}
	if only64.ValidInMode(0) || only64.ValidInMode(1) {
		t.Errorf("only64 leaf reported valid in 16/32-bit mode")
	}
	if !only64.ValidInMode(2) {
		t.Errorf("only64 leaf reported invalid in 64-bit mode")
	}
}

func TestForestRootsPopulated(t *testing.T) {
	if Forest.Legacy == nil || Forest.Xop == nil || Forest.Vex == nil || Forest.Evex == nil {
		t.Fatalf("Forest = %+v, want every root populated", Forest)
	}
	if Forest.Legacy.Tag != TagOpcode {
		t.Errorf("Legacy root tag = %v, want TagOpcode", Forest.Legacy.Tag)
	}
	if Forest.Vex.Tag != TagVexMap || Forest.Evex.Tag != TagVexMap || Forest.Xop.Tag != TagVexMap {
		t.Errorf("extended-prefix roots should all select on the map field first")
	}
}
