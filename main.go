package main

import (
	"os"

	"github.com/grovetools/prefs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
