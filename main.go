package main

import (
	"os"

	"github.com/vitaforge/vitae/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
