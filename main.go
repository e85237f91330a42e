package main

import (
	"os"

	"github.com/Fbari2002/side-quest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
