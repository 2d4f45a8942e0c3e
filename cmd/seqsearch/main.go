// Command seqsearch runs binary searches over a sorted list of integers.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer klog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
