package main

import (
	"os"

	"github.com/thenoetrevino/salesboard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
