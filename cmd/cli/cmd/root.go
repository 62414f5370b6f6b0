package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keurnel-decode",
	Short: "Keurnel's x86/AMD64 instruction decoder",
	Long:  `Keurnel's x86/AMD64 instruction decoder is a tool for decoding machine code into instruction records and assembly text.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {

	rootCmd.AddGroup(&cobra.Group{
		ID:    "arch",
		Title: "Architectures",
	})

	rootCmd.AddCommand(x8664Cmd)
}
