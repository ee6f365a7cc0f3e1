package main

import (
	"os"

	"github.com/gzhole/gravilog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
