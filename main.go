package main

import (
	"os"

	"github.com/saanvi/preppal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
