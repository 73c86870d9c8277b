// namesift-lint checks that normalization code compiles its patterns once.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/namesift/tools/namesift-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
