package main

import (
	"os"

	"github.com/myoquiz/myoquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
