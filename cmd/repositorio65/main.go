package main

import (
	"os"

	"github.com/teczamora/repositorio65/pkg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
