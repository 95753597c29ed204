package main

import (
	"fmt"
	"os"

	"github.com/paw-chain/multiswap/cmd/multiswapd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
