package x86_64

import (
	"testing"

	"github.com/keurnel/decoder/decoder"
)

func TestParseHexBytes(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		want    []byte
		wantErr bool
	}{
		{"plain hex", []string{"90"}, []byte{0x90}, false},
		{"0x-prefixed", []string{"0x4801C0"}, []byte{0x48, 0x01, 0xC0}, false},
		{"space separated across multiple args", []string{"48", "01", "c0"}, []byte{0x48, 0x01, 0xC0}, false},
		{"empty", []string{""}, nil, true},
		{"no args", []string{}, nil, true},
		{"odd-length hex", []string{"480"}, nil, true},
		{"non-hex characters", []string{"zz"}, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseHexBytes(c.args)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parseHexBytes(%v) = %v, nil, want an error", c.args, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHexBytes(%v): %v", c.args, err)
			}
			if string(got) != string(c.want) {
				t.Errorf("parseHexBytes(%v) = %v, want %v", c.args, got, c.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    decoder.Mode
		wantErr bool
	}{
		{"16", decoder.Mode16, false},
		{"32", decoder.Mode32, false},
		{"64", decoder.Mode64, false},
		{"128", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := parseMode(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseMode(%q) = %v, nil, want an error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMode(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseVendor(t *testing.T) {
	cases := []struct {
		in      string
		want    decoder.Vendor
		wantErr bool
	}{
		{"any", decoder.VendorAny, false},
		{"", decoder.VendorAny, false},
		{"Intel", decoder.VendorIntel, false},
		{"amd", decoder.VendorAMD, false},
		{"CYRIX", decoder.VendorCyrix, false},
		{"motorola", 0, true},
	}
	for _, c := range cases {
		got, err := parseVendor(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseVendor(%q) = %v, nil, want an error", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVendor(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseVendor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
