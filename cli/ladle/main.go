package main

import (
	"os"

	ladlecmder "github.com/ladlehq/ladle/cmd/ladle"
)

func main() {
	cmd := ladlecmder.NewLadleCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
