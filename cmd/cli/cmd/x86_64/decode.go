package x86_64

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/keurnel/decoder/decoder"
	"github.com/keurnel/decoder/format"
	"github.com/spf13/cobra"
)

var (
	decodeMode   string
	decodeVendor string
	decodeRip    string
)

var DecodeCmd = &cobra.Command{
	Use:     "decode <hex-bytes>",
	GroupID: "decode",
	Short:   "Decode a single x86/AMD64 instruction from a hex byte string.",
	Long:    `Decode a single x86/AMD64 instruction from a hex byte string and print its mnemonic, operands, length and a disassembled text line.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecode(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func init() {
	DecodeCmd.Flags().StringVar(&decodeMode, "mode", "64", "default code size: 16, 32 or 64")
	DecodeCmd.Flags().StringVar(&decodeVendor, "vendor", "any", "decode dialect: any, intel, amd or cyrix")
	DecodeCmd.Flags().StringVar(&decodeRip, "rip", "0", "address the instruction is fetched from, used to resolve RIP-relative operands")
}

// runDecode parses the CLI arguments, decodes one instruction from the
// resulting byte slice, and prints its record and disassembled text.
func runDecode(cmd *cobra.Command, args []string) error {
	code, err := parseHexBytes(args)
	if err != nil {
		return err
	}

	mode, err := parseMode(decodeMode)
	if err != nil {
		return err
	}

	vendor, err := parseVendor(decodeVendor)
	if err != nil {
		return err
	}

	rip, err := strconv.ParseUint(strings.TrimPrefix(decodeRip, "0x"), 16, 64)
	if err != nil {
		return fmt.Errorf("invalid --rip value %q: %w", decodeRip, err)
	}

	var in decoder.Instruction
	st := decoder.DecodeEx(&in, code, mode, mode, mode, vendor)
	if !st.Success() {
		return fmt.Errorf("decode failed: %w", st)
	}

	printInstruction(cmd, &in)

	buf := make([]byte, 256)
	n, st := format.Text(&in, rip, buf)
	if !st.Success() {
		return fmt.Errorf("format failed: %w", st)
	}
	cmd.Println(string(buf[:n]))

	return nil
}

// parseHexBytes validates the CLI arguments and decodes the hex byte string
// into a []byte, accepting an optional "0x" prefix and embedded whitespace.
func parseHexBytes(args []string) ([]byte, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("no instruction bytes provided")
	}
	raw := strings.TrimPrefix(strings.Join(args, ""), "0x")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return nil, fmt.Errorf("instruction bytes are empty")
	}

	code, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid hex byte string %q: %w", raw, err)
	}
	return code, nil
}

// parseMode maps a --mode flag value to the corresponding decoder.Mode.
func parseMode(s string) (decoder.Mode, error) {
	switch s {
	case "16":
		return decoder.Mode16, nil
	case "32":
		return decoder.Mode32, nil
	case "64":
		return decoder.Mode64, nil
	default:
		return 0, fmt.Errorf("invalid --mode value %q, want 16, 32 or 64", s)
	}
}

// parseVendor maps a --vendor flag value to the corresponding decoder.Vendor.
func parseVendor(s string) (decoder.Vendor, error) {
	switch strings.ToLower(s) {
	case "any", "":
		return decoder.VendorAny, nil
	case "intel":
		return decoder.VendorIntel, nil
	case "amd":
		return decoder.VendorAMD, nil
	case "cyrix":
		return decoder.VendorCyrix, nil
	default:
		return 0, fmt.Errorf("invalid --vendor value %q, want any, intel, amd or cyrix", s)
	}
}

// printInstruction prints the handful of record fields most useful at a
// glance: mnemonic, length, encoding family and operand count.
func printInstruction(cmd *cobra.Command, in *decoder.Instruction) {
	cmd.Printf("mnemonic: %s\n", in.Mnemonic)
	cmd.Printf("length:   %d\n", in.Length)
	cmd.Printf("encoding: %s\n", in.Encoding)
	cmd.Printf("operands: %d\n", in.OperandCount)
}
