package main

import (
	"os"

	"cpu-scheduling-simulator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
