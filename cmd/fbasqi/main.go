// Command fbasqi is a thin CLI front end over the JSON ingest path
// (fbasanalyze is the library; this binary just wires os.Stdin/flags to it).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
