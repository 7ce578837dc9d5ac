package main

import (
	"os"

	"scratchc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
