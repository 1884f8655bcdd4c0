package main

import (
	"fmt"
	"os"

	"github.com/dorkyrobot/yuri/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "yuri: %v\n", err)
		os.Exit(1)
	}
}
