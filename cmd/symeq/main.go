// Command symeq grades and previews mathematical answers from the command
// line or as an HTTP service.
//
// Usage:
//
//	symeq grade --response "(x+1)**2" --answer "x**2+2*x+1"
//	symeq preview --response "\frac{1}{2}x" --latex
//	symeq parse "sin(x)**2 + cos(x)**2" --json
//	symeq serve --config symeq.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
