package main

import (
	"os"

	"github.com/graeme-hill/ami-go/cmd/ami/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
