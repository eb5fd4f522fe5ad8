package main

import (
	"fmt"
	"os"
)

func main() {
	root, state := newRootCommand()
	if err := root.Execute(); err != nil {
		state.logger().Error("command failed", "error", err)
		_ = state.logger().Sync()
		fmt.Fprintf(os.Stdout, "\nException occured: %v\n\n", err)
		os.Exit(1)
	}
}
