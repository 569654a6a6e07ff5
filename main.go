package main

import (
	"os"

	"github.com/careerpath/advisor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
