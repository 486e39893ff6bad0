package main

import (
	"os"

	"travel-trend-blogger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
