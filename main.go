package main

import (
	"os"

	"minic/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
