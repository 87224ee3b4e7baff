package main

import (
	"os"

	"github.com/filatov87/SEO-BOG/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
