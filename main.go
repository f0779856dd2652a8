package main

import (
	"os"

	"scribble/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
