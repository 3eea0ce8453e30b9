package main

import (
	"os"

	"github.com/abhisek/kanadrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
