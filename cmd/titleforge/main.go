package main

import (
	"os"

	"github.com/dvaidya/titleforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
