package main

import "github.com/keurnel/decoder/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
