// textscan counts and extracts sentences and tokens from lines of text.
//
// Elements are given as arguments, or read one per line from stdin. A line equal to the
// configured missing marker (--input-missing, "NA" by default) is a missing element.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	err := NewRootCmd().Execute()
	klog.Flush()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
