package main

import (
	"os"

	"github.com/comelit-hap/bridgectl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
