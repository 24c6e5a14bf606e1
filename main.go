package main

import (
	"os"

	"github.com/abhisek/mathrooms/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
