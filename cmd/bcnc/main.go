package main

import (
	"os"

	"github.com/texelfit/bcn/internal/bcncli"
)

func main() {
	if err := bcncli.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
