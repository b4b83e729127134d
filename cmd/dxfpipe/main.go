package main

import (
	"os"

	"github.com/tsawler/dxfpipe/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
